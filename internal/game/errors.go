package game

import (
	"errors"
	"fmt"
)

// Kind names a class of rule or lookup failure. The string value is what
// clients see in error events.
type Kind string

const (
	KindInvalidInput        Kind = "InvalidInput"
	KindRoomNotFound        Kind = "RoomNotFound"
	KindRoomFull            Kind = "RoomFull"
	KindDuplicatePlayer     Kind = "DuplicatePlayer"
	KindNotInRoom           Kind = "NotInRoom"
	KindGameInProgress      Kind = "GameInProgress"
	KindInsufficientPlayers Kind = "InsufficientPlayers"
	KindGameNotStarted      Kind = "GameNotStarted"
	KindNotPlayersTurn      Kind = "NotPlayersTurn"
	KindIllegalCardPlay     Kind = "IllegalCardPlay"
	KindCardNotInHand       Kind = "CardNotInHand"
	KindEmptyDeck           Kind = "EmptyDeck"
	KindInternal            Kind = "Internal"
)

// Error is a classified failure. Two errors match under errors.Is when
// their kinds are equal, so callers compare against the sentinels below.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidInput        = &Error{Kind: KindInvalidInput, Msg: "invalid input"}
	ErrRoomNotFound        = &Error{Kind: KindRoomNotFound, Msg: "room not found"}
	ErrRoomFull            = &Error{Kind: KindRoomFull, Msg: "room is full"}
	ErrDuplicatePlayer     = &Error{Kind: KindDuplicatePlayer, Msg: "player already in room"}
	ErrNotInRoom           = &Error{Kind: KindNotInRoom, Msg: "player is not in this room"}
	ErrGameInProgress      = &Error{Kind: KindGameInProgress, Msg: "game already started"}
	ErrInsufficientPlayers = &Error{Kind: KindInsufficientPlayers, Msg: "at least 2 players required"}
	ErrGameNotStarted      = &Error{Kind: KindGameNotStarted, Msg: "game is not in progress"}
	ErrNotPlayersTurn      = &Error{Kind: KindNotPlayersTurn, Msg: "not your turn"}
	ErrIllegalCardPlay     = &Error{Kind: KindIllegalCardPlay, Msg: "illegal card play"}
	ErrCardNotInHand       = &Error{Kind: KindCardNotInHand, Msg: "card not in hand"}
	ErrEmptyDeck           = &Error{Kind: KindEmptyDeck, Msg: "draw and discard piles exhausted"}
)

// Errorf builds an error of the given kind with a formatted message.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf reports the kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindInternal
}
