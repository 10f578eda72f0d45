package perenual

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// La API de Perenual no es consistente con los tipos: el mismo campo puede venir
// como string, array, número o null según la especie. Estos tipos toleran todo eso.

// flexString acepta string, número, bool o null.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(strings.TrimSpace(s))
	case '[', '{':
		// objetos/arrays no aplican a un campo escalar: se ignoran
		*f = ""
	default:
		*f = flexString(string(b))
	}
	return nil
}

// flexStrings acepta array (de cualquier escalar), string suelto o null.
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = nil
		return nil
	}
	if b[0] != '[' {
		var one flexString
		if err := one.UnmarshalJSON(b); err != nil {
			return err
		}
		if one == "" {
			*f = nil
			return nil
		}
		*f = flexStrings{string(one)}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(flexStrings, 0, len(raw))
	for _, r := range raw {
		var s flexString
		if err := s.UnmarshalJSON(r); err != nil {
			return err
		}
		if s != "" {
			out = append(out, string(s))
		}
	}
	*f = out
	return nil
}

// flexBool acepta bool, 0/1 (número o string) o null.
type flexBool bool

func (f *flexBool) UnmarshalJSON(b []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(b); err != nil {
		return err
	}
	switch strings.ToLower(string(s)) {
	case "true", "yes":
		*f = true
		return nil
	case "", "false", "no":
		*f = false
		return nil
	}
	n, err := strconv.ParseFloat(string(s), 64)
	*f = flexBool(err == nil && n != 0)
	return nil
}

type speciesListResponse struct {
	Data []speciesItem `json:"data"`
}

type speciesItem struct {
	ID                int         `json:"id"`
	ScientificName    flexStrings `json:"scientific_name"`
	Cycle             flexString  `json:"cycle"`
	Watering          flexString  `json:"watering"`
	Sunlight          flexStrings `json:"sunlight"`
	PoisonousToHumans flexBool    `json:"poisonous_to_humans"`
	CareLevel         flexString  `json:"care_level"`
}

type detailResponse struct {
	Description              flexString  `json:"description"`
	Watering                 flexString  `json:"watering"`
	WateringGeneralBenchmark *benchmark  `json:"watering_general_benchmark"`
	Sunlight                 flexStrings `json:"sunlight"`
	Humidity                 flexString  `json:"humidity"`
	Hardiness                *hardiness  `json:"hardiness"`
	Fertilizer               flexString  `json:"fertilizer"`
	PruningMonth             flexStrings `json:"pruning_month"`
	PestSusceptibility       flexStrings `json:"pest_susceptibility"`
	DiseaseSusceptibility    flexStrings `json:"disease_susceptibility"`
}

type benchmark struct {
	Value flexString `json:"value"`
	Unit  flexString `json:"unit"`
}

type hardiness struct {
	Min flexString `json:"min"`
	Max flexString `json:"max"`
}
