package entity

import "time"

const DefaultPhotoURL = "https://upload.wikimedia.org/wikipedia/commons/a/ac/No_image_available.svg"

// Coordinates is a geocoded point.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Facts is the bag of candidate values offered to a record. Zero values mean
// "no candidate" and never clear a stored field.
type Facts struct {
	Name           string
	PhotoURL       string
	Category       string
	Gender         string
	LocationMarket string
	DomesticMarket string
	TeamName       string
	TeamID         int64
	LeagueID       int64
	Birthday       time.Time
	International  bool
	Coordinates    *Coordinates
	AdditionalInfo *FactSheet
}

// Merge overlays other onto f, keeping values already present in f.
func (f Facts) Merge(other Facts) Facts {
	fillString(&f.Name, other.Name)
	fillString(&f.PhotoURL, other.PhotoURL)
	fillString(&f.Category, other.Category)
	fillString(&f.Gender, other.Gender)
	fillString(&f.LocationMarket, other.LocationMarket)
	fillString(&f.DomesticMarket, other.DomesticMarket)
	fillString(&f.TeamName, other.TeamName)
	if f.TeamID == 0 {
		f.TeamID = other.TeamID
	}
	if f.LeagueID == 0 {
		f.LeagueID = other.LeagueID
	}
	if f.Birthday.IsZero() {
		f.Birthday = other.Birthday
	}
	f.International = f.International || other.International
	if f.Coordinates == nil {
		f.Coordinates = other.Coordinates
	}
	if f.AdditionalInfo.IsEmpty() {
		f.AdditionalInfo = other.AdditionalInfo
	}
	return f
}

// Enrichable is a persisted record that accepts facts under the fill-once rule.
type Enrichable interface {
	SourceURL() string
	// FillFrom copies candidate values into empty fields and returns the
	// names of the fields it changed.
	FillFrom(f Facts) []string
	// ResetBlob clears the opaque blob behind column, or additional_info when
	// column is not one of the record's blobs.
	ResetBlob(column string)
}

// Filler accumulates fill-once assignments for one record.
type Filler struct {
	changed []string
}

func (fl *Filler) String(name string, dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
		fl.changed = append(fl.changed, name)
	}
}

func (fl *Filler) ID(name string, dst *int64, v int64) {
	if *dst == 0 && v != 0 {
		*dst = v
		fl.changed = append(fl.changed, name)
	}
}

func (fl *Filler) Time(name string, dst *time.Time, v time.Time) {
	if dst.IsZero() && !v.IsZero() {
		*dst = v
		fl.changed = append(fl.changed, name)
	}
}

func (fl *Filler) Flag(name string, dst *bool, v bool) {
	if !*dst && v {
		*dst = true
		fl.changed = append(fl.changed, name)
	}
}

func (fl *Filler) Coordinates(name string, dst **Coordinates, v *Coordinates) {
	if *dst == nil && v != nil {
		c := *v
		*dst = &c
		fl.changed = append(fl.changed, name)
	}
}

func (fl *Filler) Sheet(name string, dst **FactSheet, v *FactSheet) {
	if (*dst).IsEmpty() && !v.IsEmpty() {
		*dst = v.Clone()
		fl.changed = append(fl.changed, name)
	}
}

func (fl *Filler) Changed() []string {
	return fl.changed
}

func fillString(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}
