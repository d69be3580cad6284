package auth

type VideoGrant struct {
	RoomJoin     bool   `json:"roomJoin,omitempty"`
	Room         string `json:"room,omitempty"`
	CanPublish   bool   `json:"canPublish,omitempty"`
	CanSubscribe bool   `json:"canSubscribe,omitempty"`
}

type ClaimGrants struct {
	Identity string                 `json:"-"`
	Video    *VideoGrant            `json:"video,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}
