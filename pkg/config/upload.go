package config

// UploadConfig constrains image uploads for a resource kind. It is also
// what the /images/{kind}/config discovery endpoint returns.
type UploadConfig struct {
	AllowedMimeTypes  []string `json:"allowed_mime_types"`
	AllowedExtensions []string `json:"allowed_extensions"`
	MaxSizeMB         int64    `json:"max_size_mb"`
	PathPrefix        string   `json:"-"`
}

func RoomImageConfig() UploadConfig {
	return UploadConfig{
		AllowedMimeTypes:  []string{"image/jpeg", "image/png", "image/webp"},
		AllowedExtensions: []string{".jpg", ".jpeg", ".png", ".webp"},
		MaxSizeMB:         5,
		PathPrefix:        "rooms",
	}
}

func EquipmentImageConfig() UploadConfig {
	return UploadConfig{
		AllowedMimeTypes:  []string{"image/jpeg", "image/png", "image/webp", "image/svg+xml"},
		AllowedExtensions: []string{".jpg", ".jpeg", ".png", ".webp", ".svg"},
		MaxSizeMB:         2,
		PathPrefix:        "equipments",
	}
}
