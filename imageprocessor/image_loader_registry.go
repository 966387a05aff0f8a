package imageprocessor

import (
	"sync"
)

// ImageLoaderRegistry maintains a registry of image loaders
type ImageLoaderRegistry struct {
	loaders map[FormatType]ImageLoader
	mutex   sync.RWMutex
}

// NewImageLoaderRegistry creates a new image loader registry
func NewImageLoaderRegistry() *ImageLoaderRegistry {
	registry := &ImageLoaderRegistry{
		loaders: make(map[FormatType]ImageLoader),
	}

	registry.registerStandardLoaders()

	return registry
}

// registerStandardLoaders registers loaders for every decodable format
func (r *ImageLoaderRegistry) registerStandardLoaders() {
	r.RegisterLoader(FormatJPEG, NewJPEGImageLoader())
	r.RegisterLoader(FormatPNG, NewPNGImageLoader())
	r.RegisterLoader(FormatTIFF, NewTiffImageLoader())
	r.RegisterLoader(FormatBMP, NewBMPImageLoader())

	standardLoader := NewStandardImageLoader()
	for _, f := range standardLoader.SupportedFormats {
		r.RegisterLoader(f, standardLoader)
	}
}

// RegisterLoader registers a new loader for a format
func (r *ImageLoaderRegistry) RegisterLoader(format FormatType, loader ImageLoader) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.loaders[format] = loader
}

// GetLoader returns the loader for format, or nil
func (r *ImageLoaderRegistry) GetLoader(format FormatType) ImageLoader {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if loader, ok := r.loaders[format]; ok && loader.CanLoad(format) {
		return loader
	}
	return nil
}
