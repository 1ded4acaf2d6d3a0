package model

// SimArtifact is the deliverable produced by a fulfilled order: the eSIM profile
// identity plus everything the client needs to install it.
type SimArtifact struct {
	ICCID               string `json:"iccid"`
	QRCode              string `json:"qrcode,omitempty"`
	QRCodeURL           string `json:"qrcode_url,omitempty"`
	AppleInstallationURL string `json:"direct_apple_installation_url,omitempty"`
	PackageID           string `json:"package_id,omitempty"`
	PackageTitle        string `json:"package_title,omitempty"`
	Region              string `json:"region,omitempty"`
	CountryCode         string `json:"country_code,omitempty"`
	CreatedAtMs         int64  `json:"created_at_ms,omitempty"`
	ExpirationMs        int64  `json:"expiration_ms,omitempty"`
	Installed           bool   `json:"installed"`
}

// OrderDetails augments a ProductSpec with the catalog metadata the client
// already resolved. The metadata is copied onto each provisioned sim so the
// stored artifact is self-describing.
type OrderDetails struct {
	ProductSpec
	PackageTitle string `json:"package_title,omitempty"`
	Region       string `json:"region,omitempty"`
	CountryCode  string `json:"country_code,omitempty"`
	CreatedAtMs  int64  `json:"created_at_ms,omitempty"`
	ExpirationMs int64  `json:"expiration_ms,omitempty"`
}

// Decorate stamps the order metadata onto a provisioned sim.
func (d OrderDetails) Decorate(sim *SimArtifact) {
	sim.PackageID = d.PackageID
	sim.PackageTitle = d.PackageTitle
	sim.Region = d.Region
	sim.CountryCode = d.CountryCode
	if d.CreatedAtMs != 0 {
		sim.CreatedAtMs = d.CreatedAtMs
	}
	if d.ExpirationMs != 0 {
		sim.ExpirationMs = d.ExpirationMs
	}
}
