package batch

import (
	"encoding/json"
	"os"

	"mesh-picker/internal/scene"
)

// ManifestEntry represents one shot in the output manifest.
type ManifestEntry struct {
	Name    string     `json:"name"`
	Image   string     `json:"image,omitempty"`
	Success bool       `json:"success"`
	Error   string     `json:"error,omitempty"`
	Pick    *PickEntry `json:"pick,omitempty"`
}

// PickEntry is the manifest form of a pick result.
type PickEntry struct {
	Hit           bool    `json:"hit"`
	ObjectID      int     `json:"object_id,omitempty"`
	Object        string  `json:"object,omitempty"`
	TriangleIndex int     `json:"triangle_index"`
	StartIndex    int     `json:"start_index"`
	Distance      float64 `json:"distance,omitempty"`
}

// WriteManifest writes the results as indented JSON. sc, when non-nil, is used
// to name picked objects.
func WriteManifest(path string, results []Result, sc *scene.Scene) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		e := ManifestEntry{
			Name:    r.Name,
			Image:   r.Image,
			Success: r.Success,
			Error:   r.Error,
		}
		if r.Pick != nil {
			p := &PickEntry{Hit: r.Pick.Hit}
			if r.Pick.Hit {
				p.ObjectID = int(r.Pick.ObjectID)
				p.TriangleIndex = r.Pick.TriangleIndex
				p.StartIndex = r.Pick.StartIndex()
				p.Distance = r.Pick.Distance
				if sc != nil {
					if obj, ok := sc.Get(r.Pick.ObjectID); ok {
						p.Object = obj.Name
					}
				}
			}
			e.Pick = p
		}
		entries[i] = e
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
