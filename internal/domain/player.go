package domain

type Player struct {
	uuid      string
	matchUuid string
	playerCli Client
}

func NewPlayer(matchUuid string, cli Client) Player {
	return Player{
		uuid:      cli.Uuid(),
		matchUuid: matchUuid,
		playerCli: cli,
	}
}

func (p Player) Uuid() string {
	return p.uuid
}

func (p Player) MatchUuid() string {
	return p.matchUuid
}

func (p Player) SendMessage(msg Message) error {
	return p.playerCli.WriteMessage(msg)
}

func (p Player) ReceiveMessage() (Message, error) {
	return p.playerCli.ReadMessage()
}
