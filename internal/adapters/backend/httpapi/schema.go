package httpapi

import "github.com/backpork/backpork-cli/internal/domain"

// Wire payloads for the BackPork backend API. Field names are part of the
// backend contract and must not change.

type connectRequest struct {
	IP string `json:"ip"`
}

type ackPayload struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type gamePayload struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	RequiredFW string `json:"requiredFW"`
	HasFakelib bool   `json:"hasFakelib"`
	Status     string `json:"status"`
}

// Games is a pointer so a response without the key is distinguishable from
// an empty list; its absence signals a failed scan.
type scanPayload struct {
	Games *[]gamePayload `json:"games"`
}

type libraryPayload struct {
	Name    string `json:"name"`
	Size    string `json:"size"`
	Patched bool   `json:"patched"`
}

type librariesPayload struct {
	Libraries []libraryPayload `json:"libraries"`
}

type setupRequest struct {
	TitleID   string `json:"titleId"`
	GameTitle string `json:"gameTitle"`
	SourceFW  string `json:"sourceFW"`
	TargetFW  string `json:"targetFW"`
}

type setupStepPayload struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

type setupPayload struct {
	Success bool               `json:"success"`
	Error   string             `json:"error,omitempty"`
	Logs    []setupStepPayload `json:"logs,omitempty"`
}

type removeRequest struct {
	TitleID string `json:"titleId"`
}

func gameFromPayload(payload gamePayload) domain.Game {
	game := domain.Game{
		ID:                 domain.GameID(payload.ID),
		Title:              payload.Title,
		RequiredFirmware:   payload.RequiredFW,
		HasCompatLibraries: payload.HasFakelib,
		Status:             domain.GameStatus(payload.Status),
	}

	if game.Status != domain.GameStatusReady && game.Status != domain.GameStatusNeedsSetup {
		if game.HasCompatLibraries {
			game.Status = domain.GameStatusReady
		} else {
			game.Status = domain.GameStatusNeedsSetup
		}
	}

	return game
}

func severityFromType(logType string) domain.Severity {
	switch domain.Severity(logType) {
	case domain.SeveritySuccess:
		return domain.SeveritySuccess
	case domain.SeverityError:
		return domain.SeverityError
	default:
		return domain.SeverityInfo
	}
}
