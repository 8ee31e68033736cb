package imbridge

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
)

// TextureID is an opaque reference to a GPU texture. It carries no ownership:
// the TextureRegistry that created it owns the underlying resource.
type TextureID uintptr

// NilTexture is the sentinel returned when a texture could not be created.
// Draw commands with NilTexture are rendered untextured.
const NilTexture TextureID = 0

var (
	// ErrInvalidTextureSize is returned for non-positive texture dimensions.
	ErrInvalidTextureSize = errors.New("imbridge: invalid texture size")
	// ErrPixelBufferTooSmall is returned when pixels holds fewer than width*height*4 bytes.
	ErrPixelBufferTooSmall = errors.New("imbridge: pixel buffer too small")
	// ErrTextureUpload wraps failures reported by the TextureUploader.
	ErrTextureUpload = errors.New("imbridge: texture upload failed")
	// ErrUnknownTexture is returned when releasing a texture the registry does not own.
	ErrUnknownTexture = errors.New("imbridge: unknown texture")
)

// BytesPerPixel is the size of one RGBA8 pixel.
const BytesPerPixel = 4

// MaxTextureDim is the largest width or height a backend can address.
const MaxTextureDim = math.MaxInt32

// TextureUploader moves pixel data onto the GPU.
// Implementations are provided by backends.
type TextureUploader interface {
	// Upload copies a tightly packed, row-major RGBA8 buffer into a new texture.
	// It must not retain pixels after returning.
	Upload(pixels []byte, width, height int) (TextureID, error)

	// Delete releases a texture previously returned by Upload.
	Delete(id TextureID)
}

type textureInfo struct {
	width, height int
}

// TextureRegistry uploads textures and owns them until released.
type TextureRegistry struct {
	uploader TextureUploader
	textures map[TextureID]textureInfo
	logger   *slog.Logger
}

// RegistryOption configures a TextureRegistry.
type RegistryOption func(*TextureRegistry)

// WithRegistryLogger sets the logger used by the registry.
func WithRegistryLogger(l *slog.Logger) RegistryOption {
	return func(r *TextureRegistry) { r.logger = l }
}

// NewTextureRegistry creates a registry uploading through u.
func NewTextureRegistry(u TextureUploader, opts ...RegistryOption) *TextureRegistry {
	r := &TextureRegistry{
		uploader: u,
		textures: make(map[TextureID]textureInfo),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateTexture uploads an RGBA8 pixel buffer and returns its handle.
// The upload is synchronous; the caller may reuse pixels once this returns.
// On failure it returns NilTexture and an error.
func (r *TextureRegistry) CreateTexture(pixels []byte, width, height int) (TextureID, error) {
	if width <= 0 || height <= 0 || width > MaxTextureDim || height > MaxTextureDim ||
		width > math.MaxInt/BytesPerPixel/height {
		return NilTexture, fmt.Errorf("%w: %dx%d", ErrInvalidTextureSize, width, height)
	}
	need := width * height * BytesPerPixel
	if len(pixels) < need {
		return NilTexture, fmt.Errorf("%w: have %d bytes, need %d", ErrPixelBufferTooSmall, len(pixels), need)
	}

	id, err := r.uploader.Upload(pixels[:need], width, height)
	if err != nil {
		return NilTexture, fmt.Errorf("%w: %w", ErrTextureUpload, err)
	}
	if id == NilTexture {
		return NilTexture, fmt.Errorf("%w: uploader returned nil handle", ErrTextureUpload)
	}

	r.textures[id] = textureInfo{width: width, height: height}
	r.logger.Debug("texture created", "id", uint64(id), "width", width, "height", height)
	return id, nil
}

// Release deletes a texture created by this registry.
// Draw commands still referencing id must not be rendered afterwards.
func (r *TextureRegistry) Release(id TextureID) error {
	if _, ok := r.textures[id]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownTexture, uint64(id))
	}
	r.uploader.Delete(id)
	delete(r.textures, id)
	r.logger.Debug("texture released", "id", uint64(id))
	return nil
}

// Size returns the dimensions of a live texture.
func (r *TextureRegistry) Size(id TextureID) (width, height int, ok bool) {
	info, ok := r.textures[id]
	return info.width, info.height, ok
}

// Len returns the number of live textures.
func (r *TextureRegistry) Len() int {
	return len(r.textures)
}

// Close releases every texture owned by the registry.
func (r *TextureRegistry) Close() {
	for id := range r.textures {
		r.uploader.Delete(id)
	}
	clear(r.textures)
}
