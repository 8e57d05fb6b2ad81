package config

var defaults = map[string]any{
	"api_base_url": "http://localhost:8000/api",
	"http_timeout": 10,
	"log_level":    "info",

	"listen_addr": ":8080",
	"kiosk_name":  "kiosk",

	"scanner_device": "",

	"qr_image_size": 512,
	"spool_dir":     "",
}

func Defaults() map[string]any {
	values := make(map[string]any)
	for k, v := range defaults {
		values[k] = v
	}
	return values
}
