package domain

const (
	ClientUuidHeader = "X-Client-Key"
)

type messageType byte

const (
	StartMatch = messageType(iota)
	RequestAttack
	Attack
	AttackResult
	MatchOver
	Reset
	Leave
	Error
)

type Message struct {
	Type    messageType
	Payload any
}

type FleetShip struct {
	Length int
	Cells  []Coord
}

type StartMatchPayload struct {
	MatchUuid string
	Fleet     []FleetShip
}

type AttackPayload struct {
	Row int
	Col int
}

func (p AttackPayload) Coord() Coord {
	return Coord{Row: p.Row, Col: p.Col}
}

type AttackResultPayload struct {
	Attacker  Side
	Coord     Coord
	Outcome   Outcome
	Revealed  []Coord
	SunkCells []Coord
	State     MatchState
}

type MatchOverPayload struct {
	Winner     Side
	GameResult string
}

type ErrorPayload struct {
	Reason string
}

func NewStartMatchPayload(matchUuid string, board *Board) StartMatchPayload {
	payload := StartMatchPayload{MatchUuid: matchUuid}
	for _, p := range board.Placements() {
		payload.Fleet = append(payload.Fleet, FleetShip{
			Length: p.Ship.Length(),
			Cells:  p.Footprint(),
		})
	}
	return payload
}

type AttackResultPayloadOption func(p *AttackResultPayload)

// HideSunkCells drops the wreck footprint, e.g. when the receiver already knows its own fleet.
func HideSunkCells() AttackResultPayloadOption {
	return func(p *AttackResultPayload) {
		p.SunkCells = nil
	}
}

func NewAttackResultPayload(report Report, opts ...AttackResultPayloadOption) AttackResultPayload {
	payload := AttackResultPayload{
		Attacker:  report.Attacker,
		Coord:     report.Shot.Coord,
		Outcome:   report.Shot.Outcome,
		Revealed:  report.Shot.Revealed,
		SunkCells: report.Shot.SunkCells,
		State:     report.State,
	}
	for _, opt := range opts {
		opt(&payload)
	}
	return payload
}

type Client interface {
	WriteMessage(msg Message) error
	ReadMessage() (Message, error)
	Uuid() string
}
