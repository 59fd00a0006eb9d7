package models

import (
	"strings"
	"time"
)

// Profile is the per-user profile record. Exactly one exists per account;
// it is created by the remote store at sign-up.
type Profile struct {
	ID                string
	UserID            string
	FullName          *string
	Bio               *string
	HeightCm          *float64
	WeightKg          *float64
	Goal              *string
	AvatarURL         *string
	PreferredLanguage *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DisplayName falls back to a placeholder for profiles without a name.
func (p Profile) DisplayName() string {
	if p.FullName == nil || strings.TrimSpace(*p.FullName) == "" {
		return "No name"
	}
	return *p.FullName
}

// ProfilePatch lists the profile fields to change; nil fields are left as
// they are.
type ProfilePatch struct {
	FullName          *string
	Bio               *string
	HeightCm          *float64
	WeightKg          *float64
	Goal              *string
	AvatarURL         *string
	PreferredLanguage *string
}

func (p ProfilePatch) empty() bool {
	return p.FullName == nil && p.Bio == nil && p.HeightCm == nil && p.WeightKg == nil &&
		p.Goal == nil && p.AvatarURL == nil && p.PreferredLanguage == nil
}

func (p ProfilePatch) Validate() error {
	if p.empty() {
		return invalid("profile", "nothing to update")
	}
	if err := checkNonNegativeFloat("height_cm", p.HeightCm); err != nil {
		return err
	}
	return checkNonNegativeFloat("weight_kg", p.WeightKg)
}

// Row renders the update row, stamping updated_at with now.
func (p ProfilePatch) Row(now time.Time) Row {
	row := Row{"updated_at": now.UTC().Format(time.RFC3339Nano)}
	putOptionalString(row, "full_name", p.FullName)
	putOptionalString(row, "bio", p.Bio)
	putOptional(row, "height_cm", p.HeightCm)
	putOptional(row, "weight_kg", p.WeightKg)
	putOptionalString(row, "goal", p.Goal)
	putOptionalString(row, "avatar_url", p.AvatarURL)
	putOptionalString(row, "preferred_language", p.PreferredLanguage)
	return row
}

// ProfileFromRow validates and converts a remote profiles row.
func ProfileFromRow(row Row) (Profile, error) {
	var (
		p   Profile
		err error
	)
	if p.ID, err = row.uuid("id"); err != nil {
		return Profile{}, err
	}
	if p.UserID, err = row.uuid("user_id"); err != nil {
		return Profile{}, err
	}
	strs := map[string]**string{
		"full_name":          &p.FullName,
		"bio":                &p.Bio,
		"goal":               &p.Goal,
		"avatar_url":         &p.AvatarURL,
		"preferred_language": &p.PreferredLanguage,
	}
	for key, dst := range strs {
		if *dst, err = row.optionalString(key); err != nil {
			return Profile{}, err
		}
	}
	if p.HeightCm, err = row.optionalFloat("height_cm"); err != nil {
		return Profile{}, err
	}
	if p.WeightKg, err = row.optionalFloat("weight_kg"); err != nil {
		return Profile{}, err
	}
	if p.CreatedAt, err = row.timestamp("created_at"); err != nil {
		return Profile{}, err
	}
	if p.UpdatedAt, err = row.timestamp("updated_at"); err != nil {
		return Profile{}, err
	}
	return p, nil
}
