package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// PhotosConfig locates the photo directory and its conventional subdirectories
type PhotosConfig struct {
	Dir         string `yaml:"dir" validate:"required"`
	GPXSubdir   string `yaml:"gpxSubdir"`
	NoGPSSubdir string `yaml:"noGpsSubdir"`
}

// MatchConfig tunes the interpolation engine
type MatchConfig struct {
	// MaxGapSeconds bounds both edge extrapolation and bracket width.
	MaxGapSeconds int `yaml:"maxGapSeconds" validate:"gte=0"`
	// Timezone is the IANA zone applied to photo timestamps that carry no
	// offset of their own. Empty means the host's local zone.
	Timezone string `yaml:"timezone"`
}

// ExiftoolConfig configures the external metadata tool
type ExiftoolConfig struct {
	Path      string `yaml:"path"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
}

// ScanConfig bounds per-request resource usage
type ScanConfig struct {
	Workers     int `yaml:"workers" validate:"gte=0"`
	ThumbnailPx int `yaml:"thumbnailPx" validate:"gte=0"`
	JPEGQuality int `yaml:"jpegQuality" validate:"gte=0,lte=100"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server   ServerConfig   `yaml:"server" validate:"required"`
	Photos   PhotosConfig   `yaml:"photos" validate:"required"`
	Match    MatchConfig    `yaml:"match"`
	Exiftool ExiftoolConfig `yaml:"exiftool"`
	Scan     ScanConfig     `yaml:"scan"`
}

// GPXDir returns the track directory under the photo directory.
func (c AppConfig) GPXDir() string {
	return joinDir(c.Photos.Dir, c.Photos.GPXSubdir)
}

// NoGPSDir returns the directory unmatched photos are moved into.
func (c AppConfig) NoGPSDir() string {
	return joinDir(c.Photos.Dir, c.Photos.NoGPSSubdir)
}
