package pmocover

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"gargoton.petite-maison-orange.fr/eric/pmoserv/dlna"
)

// ServeMux wires the /thumbs routes: the WebP master, the per-profile
// variants the DIDL mapper advertises, and the usage stats.
func (c *Cache) ServeMux(mux *http.ServeMux) {
	mux.HandleFunc("/thumbs/images/", func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/thumbs/images/"), "/")
		if len(parts) == 0 || parts[0] == "" {
			http.Error(w, "missing pk", 400)
			return
		}
		pk := parts[0]
		if len(parts) == 1 {
			path, err := c.MasterPath(pk)
			if err != nil {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Type", "image/webp")
			http.ServeFile(w, r, path)
			return
		}

		profile, ok := profileByName(parts[1])
		if !ok {
			http.Error(w, "unknown image profile", 400)
			return
		}
		if _, err := c.MasterPath(pk); err != nil {
			http.NotFound(w, r)
			return
		}
		data, err := c.Variant(pk, profile)
		if err != nil {
			http.Error(w, "cannot generate", 500)
			return
		}
		w.Header().Set("Content-Type", profile.MimeType())
		w.Write(data)
	})

	mux.HandleFunc("/thumbs/stats", func(w http.ResponseWriter, r *http.Request) {
		entries, err := c.db.GetAll()
		if err != nil {
			http.Error(w, "cannot retrieve stats", 500)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entries)
	})
}

// profileByName resolves the profile segment of a variant URL, including
// the exact-resolution form JPEG_RES_<W>_<H>.
func profileByName(name string) (dlna.ImageProfile, bool) {
	switch name {
	case "JPEG_TN":
		return dlna.JPEGTn, true
	case "JPEG_SM":
		return dlna.JPEGSm, true
	case "JPEG_MED":
		return dlna.JPEGMed, true
	case "JPEG_LRG":
		return dlna.JPEGLrg, true
	case "PNG_TN":
		return dlna.PNGTn, true
	case "PNG_LRG":
		return dlna.PNGLrg, true
	case "GIF_LRG":
		return dlna.GIFLrg, true
	}
	if strings.HasPrefix(name, "JPEG_RES_") {
		dims := strings.Split(strings.TrimPrefix(name, "JPEG_RES_"), "_")
		if len(dims) == 2 {
			w, errW := strconv.Atoi(dims[0])
			h, errH := strconv.Atoi(dims[1])
			if errW == nil && errH == nil && w > 0 && h > 0 {
				return dlna.NewJPEGResHV(w, h), true
			}
		}
	}
	return dlna.ImageProfile{}, false
}
