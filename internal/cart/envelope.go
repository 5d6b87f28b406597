package cart

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nayanishant/vegetable-wholesaler/internal/domain"
)

// currentVersion is the layout written by Encode. Version 1 is the legacy
// bare array of lines that predates the envelope.
const currentVersion = 2

var (
	ErrCorruptPayload     = errors.New("corrupt cart payload")
	ErrUnsupportedVersion = errors.New("unsupported cart payload version")
)

type envelope struct {
	Version int               `json:"version"`
	Lines   []domain.CartLine `json:"lines"`
}

// legacyLine tolerates the fields older clients used to persist.
type legacyLine struct {
	ID       string          `json:"id"`
	Quantity int             `json:"quantity"`
	Image    json.RawMessage `json:"image,omitempty"`
}

func Encode(lines []domain.CartLine) ([]byte, error) {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	data, err := json.Marshal(envelope{Version: currentVersion, Lines: lines})
	if err != nil {
		return nil, fmt.Errorf("marshal cart failed: %w", err)
	}
	return data, nil
}

// Decode parses a persisted cart, migrating older layouts, and returns
// normalized lines.
func Decode(data []byte) ([]domain.CartLine, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrCorruptPayload
	}

	switch data[0] {
	case '[':
		return migrateV1(data)
	case '{':
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptPayload, err)
		}
		if env.Version != currentVersion {
			return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
		}
		return normalize(env.Lines), nil
	default:
		return nil, ErrCorruptPayload
	}
}

func migrateV1(data []byte) ([]domain.CartLine, error) {
	var legacy []legacyLine
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptPayload, err)
	}

	lines := make([]domain.CartLine, 0, len(legacy))
	for _, l := range legacy {
		lines = append(lines, domain.CartLine{
			ProductID: l.ID,
			Quantity:  l.Quantity,
			Image:     legacyImage(l.Image),
		})
	}
	return normalize(lines), nil
}

// legacyImage accepts either a plain URL or an uploaded-image object.
func legacyImage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var url string
	if err := json.Unmarshal(raw, &url); err == nil {
		return url
	}
	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.URL
	}
	return ""
}

// normalize drops empty ids and non-positive quantities and merges duplicates,
// keeping first-seen order. Quantities are capped at MaxQuantity.
func normalize(in []domain.CartLine) []domain.CartLine {
	out := make([]domain.CartLine, 0, len(in))
	index := make(map[string]int, len(in))
	for _, l := range in {
		if l.ProductID == "" || l.Quantity <= 0 {
			continue
		}
		if i, ok := index[l.ProductID]; ok {
			out[i].Quantity = addQuantity(out[i].Quantity, l.Quantity)
			continue
		}
		l.Quantity = min(l.Quantity, MaxQuantity)
		index[l.ProductID] = len(out)
		out = append(out, l)
	}
	return out
}
