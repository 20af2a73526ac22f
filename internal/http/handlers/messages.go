package handlers

// User-facing error messages keyed by error code, per supported locale. The
// front-end surfaces these verbatim, so they stay short and non-technical.
var messages = map[string]map[string]string{
	"en": {
		"bad_request":     "The request payload is invalid.",
		"prompt_required": "A prompt is required.",
		"image_required":  "At least one source image is required.",
		"too_many_images": "Too many source images; at most 3 are allowed.",
		"invalid_image":   "One of the source images could not be read.",
		"image_too_large": "The source image is too large.",
		"safety_blocked":  "The request was blocked by the safety filters. Try a different prompt.",
		"bad_finish":      "Generation stopped before an image was produced.",
		"text_only":       "The model answered with text instead of an image.",
		"no_image":        "The model returned no image. Try again.",
		"upstream_error":  "The image service is unavailable. Try again later.",
		"not_found":       "No such creation.",
	},
	"es": {
		"bad_request":     "La solicitud no es válida.",
		"prompt_required": "Se requiere una instrucción.",
		"image_required":  "Se requiere al menos una imagen de origen.",
		"too_many_images": "Demasiadas imágenes de origen; se permiten como máximo 3.",
		"invalid_image":   "No se pudo leer una de las imágenes de origen.",
		"image_too_large": "La imagen de origen es demasiado grande.",
		"safety_blocked":  "La solicitud fue bloqueada por los filtros de seguridad. Prueba otra instrucción.",
		"bad_finish":      "La generación se detuvo antes de producir una imagen.",
		"text_only":       "El modelo respondió con texto en lugar de una imagen.",
		"no_image":        "El modelo no devolvió ninguna imagen. Inténtalo de nuevo.",
		"upstream_error":  "El servicio de imágenes no está disponible. Inténtalo más tarde.",
		"not_found":       "No existe esa creación.",
	},
	"id": {
		"bad_request":     "Permintaan tidak valid.",
		"prompt_required": "Prompt wajib diisi.",
		"image_required":  "Minimal satu gambar sumber diperlukan.",
		"too_many_images": "Gambar sumber terlalu banyak; maksimal 3.",
		"invalid_image":   "Salah satu gambar sumber tidak dapat dibaca.",
		"image_too_large": "Gambar sumber terlalu besar.",
		"safety_blocked":  "Permintaan diblokir oleh filter keamanan. Coba prompt lain.",
		"bad_finish":      "Pembuatan gambar berhenti sebelum selesai.",
		"text_only":       "Model menjawab dengan teks, bukan gambar.",
		"no_image":        "Model tidak mengembalikan gambar. Coba lagi.",
		"upstream_error":  "Layanan gambar sedang tidak tersedia. Coba lagi nanti.",
		"not_found":       "Kreasi tidak ditemukan.",
	},
}

func localizedMessage(locale, code string) string {
	if catalog, ok := messages[locale]; ok {
		if msg, ok := catalog[code]; ok {
			return msg
		}
	}
	if msg, ok := messages["en"][code]; ok {
		return msg
	}
	return code
}
