package entity

import "encoding/json"

// PlayerID is the opaque identifier a device generates once and reuses. It is not a credential.
type PlayerID string

// MarshalJSON encodes an unset identifier as null.
func (that PlayerID) MarshalJSON() ([]byte, error) {
	if that == "" {
		return []byte("null"), nil
	}

	return json.Marshal(string(that))
}

func (that *PlayerID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*that = ""
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*that = PlayerID(raw)

	return nil
}

// Role describes how a player relates to a game record.
type Role struct {
	Mark               Mark `json:"mark"`
	IsPlayerX          bool `json:"isPlayerX"`
	IsPlayerO          bool `json:"isPlayerO"`
	IsSpectator        bool `json:"isSpectator"`
	IsMyTurn           bool `json:"isMyTurn"`
	WaitingForOpponent bool `json:"waitingForOpponent"`
}

// RoleOf derives the role of playerID in the game. Spectators never get a turn.
func (that *Game) RoleOf(playerID string) Role {
	role := Role{
		IsPlayerX:          that.Controls(playerID, MarkX),
		IsPlayerO:          that.Controls(playerID, MarkO),
		WaitingForOpponent: !that.HasJoiner(),
	}

	role.IsSpectator = !role.IsPlayerX && !role.IsPlayerO
	role.IsMyTurn = !that.IsFinished() && that.Controls(playerID, that.Turn)

	switch {
	case role.IsPlayerX && role.IsPlayerO:
		role.Mark = that.Turn
	case role.IsPlayerX:
		role.Mark = MarkX
	case role.IsPlayerO:
		role.Mark = MarkO
	}

	return role
}
