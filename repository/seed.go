package repository

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"zakat-tracker/domain"
)

//go:embed seed.yaml
var defaultSeed []byte

// Seed is the initial state handed to the in-memory repositories.
type Seed struct {
	Users        []domain.User
	Transactions []domain.Transaction
	Distribution []domain.DonorRegion
	Doas         []domain.Doa
	Templates    []domain.Template
}

type seedFile struct {
	Users []struct {
		ID        string   `yaml:"id"`
		Name      string   `yaml:"name"`
		PhotoURL  string   `yaml:"photo_url"`
		Following []string `yaml:"following"`
	} `yaml:"users"`
	Transactions []struct {
		ID     string `yaml:"id"`
		Type   string `yaml:"type"`
		Amount string `yaml:"amount"`
		UserID string `yaml:"user_id"`
		Age    string `yaml:"age"`
	} `yaml:"transactions"`
	DonorDistribution []struct {
		Region string `yaml:"region"`
		Count  int    `yaml:"count"`
	} `yaml:"donor_distribution"`
	Templates []struct {
		ID         string `yaml:"id"`
		Background string `yaml:"background"`
	} `yaml:"templates"`
	Doas []struct {
		ID                 string   `yaml:"id"`
		UserID             string   `yaml:"user_id"`
		Text               string   `yaml:"text"`
		Visibility         string   `yaml:"visibility"`
		Age                string   `yaml:"age"`
		AmeenCount         int      `yaml:"ameen_count"`
		AmeenBy            []string `yaml:"ameen_by"`
		TemplateID         string   `yaml:"template_id"`
		TemplateBackground string   `yaml:"template_background"`
	} `yaml:"doas"`
}

// DefaultSeed parses the embedded seed data relative to now.
func DefaultSeed(now time.Time) (*Seed, error) {
	return ParseSeed(defaultSeed, now)
}

// ParseSeed decodes YAML seed data. Entry ages are subtracted from now.
func ParseSeed(data []byte, now time.Time) (*Seed, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	seed := &Seed{}

	for _, u := range f.Users {
		seed.Users = append(seed.Users, domain.User{
			ID:        u.ID,
			Name:      u.Name,
			PhotoURL:  u.PhotoURL,
			Following: u.Following,
		})
	}

	for _, t := range f.Transactions {
		amount, err := decimal.NewFromString(t.Amount)
		if err != nil {
			return nil, fmt.Errorf("seed transaction %s amount: %w", t.ID, err)
		}
		date, err := ageToTime(t.Age, now)
		if err != nil {
			return nil, fmt.Errorf("seed transaction %s: %w", t.ID, err)
		}
		seed.Transactions = append(seed.Transactions, domain.Transaction{
			ID:     t.ID,
			Type:   t.Type,
			Amount: amount,
			UserID: t.UserID,
			Date:   date,
		})
	}

	for _, r := range f.DonorDistribution {
		seed.Distribution = append(seed.Distribution, domain.DonorRegion{Region: r.Region, Count: r.Count})
	}

	for _, t := range f.Templates {
		seed.Templates = append(seed.Templates, domain.Template{ID: t.ID, Background: t.Background})
	}

	for _, d := range f.Doas {
		created, err := ageToTime(d.Age, now)
		if err != nil {
			return nil, fmt.Errorf("seed doa %s: %w", d.ID, err)
		}
		visibility := d.Visibility
		if visibility == "" {
			visibility = domain.VisibilityPublic
		}
		ameenBy := make(map[string]bool, len(d.AmeenBy))
		for _, id := range d.AmeenBy {
			ameenBy[id] = true
		}
		seed.Doas = append(seed.Doas, domain.Doa{
			ID:                 d.ID,
			UserID:             d.UserID,
			Text:               d.Text,
			Visibility:         visibility,
			TemplateID:         d.TemplateID,
			TemplateBackground: d.TemplateBackground,
			AmeenCount:         d.AmeenCount,
			AmeenBy:            ameenBy,
			CreatedAt:          created,
			UpdatedAt:          created,
		})
	}

	return seed, nil
}

func ageToTime(age string, now time.Time) (time.Time, error) {
	if age == "" {
		return now, nil
	}
	d, err := time.ParseDuration(age)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid age %q: %w", age, err)
	}
	return now.Add(-d), nil
}
