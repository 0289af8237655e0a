package models

// Avatar colors assigned to linked accounts
const (
	ColorCyan   = "#25F4EE"
	ColorRed    = "#FE2C55"
	ColorYellow = "#FEC200"
	ColorGreen  = "#00D26A"
)

// AvatarPalette is the fixed set of colors a simulated account can receive.
var AvatarPalette = []string{ColorCyan, ColorRed, ColorYellow, ColorGreen}

// SeedAccountID is the id of the account present before anything is linked
const SeedAccountID = "1"

// TikTokAccount represents a linked publishing account.
// An account with an AccessToken is connected to the real API; without one it is simulated.
type TikTokAccount struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	AvatarColor string `json:"avatarColor"`
	AccessToken string `json:"accessToken,omitempty"`
}

// HasToken reports whether the account can publish through the real API
func (a TikTokAccount) HasToken() bool {
	return a.AccessToken != ""
}

// SeedAccounts returns the account collection used when nothing has been persisted yet
func SeedAccounts() []TikTokAccount {
	return []TikTokAccount{
		{
			ID:          SeedAccountID,
			Username:    "@creator_one",
			AvatarColor: ColorCyan,
		},
	}
}
