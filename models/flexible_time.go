package models

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// FlexibleTime accepte plusieurs formats de dates côté frontend et force
// l'interprétation en heure française (Europe/Paris)
type FlexibleTime struct {
	time.Time
}

// UnmarshalJSON accepte les formats de dates envoyés par le frontend
func (ft *FlexibleTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), "\"")
	if s == "null" || s == "" {
		ft.Time = time.Time{}
		return nil
	}

	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		paris = time.FixedZone("CET", 2*3600)
	}

	// Quel que soit le format reçu, l'heure est interprétée en heure française
	formats := []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02",
		time.RFC3339,
		time.RFC3339Nano,
	}

	for _, layout := range formats {
		parsedTime, parseErr := time.ParseInLocation(layout, s, paris)
		if parseErr == nil {
			ft.Time = parsedTime
			return nil
		}
	}

	return fmt.Errorf("format de date invalide: %s", s)
}

// MarshalJSON retourne la date en heure française, sans suffixe de fuseau
func (ft FlexibleTime) MarshalJSON() ([]byte, error) {
	if ft.Time.IsZero() {
		return []byte("null"), nil
	}

	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		paris = time.FixedZone("CET", 2*3600)
	}

	return []byte("\"" + ft.Time.In(paris).Format("2006-01-02T15:04:05") + "\""), nil
}

// MarshalBSONValue stocke FlexibleTime comme une vraie date MongoDB
// (pas un sous-document)
func (ft *FlexibleTime) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if ft == nil || ft.Time.IsZero() {
		return bsontype.Null, nil, nil
	}

	// MongoDB stocke les dates en millisecondes depuis l'epoch Unix,
	// int64 little-endian
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(ft.Time.UnixMilli()))

	return bsontype.DateTime, buf, nil
}

// UnmarshalBSONValue décode une date MongoDB en FlexibleTime
func (ft *FlexibleTime) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.DateTime:
		if len(data) < 8 {
			return fmt.Errorf("invalid DateTime data: need 8 bytes, got %d", len(data))
		}
		timestampMs := int64(binary.LittleEndian.Uint64(data[:8]))
		ft.Time = time.Unix(timestampMs/1000, (timestampMs%1000)*1000000)
		return nil
	case bsontype.Null:
		ft.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("cannot decode %v into FlexibleTime (expected DateTime)", t)
	}
}
