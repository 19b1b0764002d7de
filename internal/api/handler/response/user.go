package response

type UserResponseDTO struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
}

type AuthResponseDTO struct {
	Token        string          `json:"token"`
	RefreshToken string          `json:"refreshToken"`
	User         UserResponseDTO `json:"user"`
}

// MeResponse carries the session identity plus the capability set of the
// role, so the UI gates actions from the same table as the API.
type MeResponse struct {
	User         UserResponseDTO `json:"user"`
	Capabilities []string        `json:"capabilities"`
}
