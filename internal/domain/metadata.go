package domain

// Trait is a single attribute entry in a trophy's metadata.
type Trait struct {
	DisplayType *string `json:"display_type,omitempty"`
	TraitType   string  `json:"trait_type"`
	Value       string  `json:"value"`
}

// Metadata is the descriptive record attached to a trophy. The schema
// follows the OpenSea metadata standard used by the NFT collaborator;
// the hub treats it as opaque beyond its shape.
type Metadata struct {
	Image           *string `json:"image,omitempty"`
	ImageData       *string `json:"image_data,omitempty"`
	ExternalURL     *string `json:"external_url,omitempty"`
	Description     *string `json:"description,omitempty"`
	Name            *string `json:"name,omitempty"`
	Attributes      []Trait `json:"attributes,omitempty"`
	BackgroundColor *string `json:"background_color,omitempty"`
	AnimationURL    *string `json:"animation_url,omitempty"`
	YoutubeURL      *string `json:"youtube_url,omitempty"`
}
