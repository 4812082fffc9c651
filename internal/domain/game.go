package domain

// GameID is the console title identifier (e.g. CUSA00123). It is the only
// identity a game has; the games collection never contains two entries with
// the same id.
type GameID string

type GameStatus string

const (
	GameStatusReady      GameStatus = "ready"
	GameStatusNeedsSetup GameStatus = "needs_setup"
)

type Game struct {
	ID                 GameID
	Title              string
	RequiredFirmware   string
	HasCompatLibraries bool
	Status             GameStatus
}
