package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/kiryu-dev/sea-battle/internal/adapters/webapi"
	"github.com/kiryu-dev/sea-battle/internal/domain"
	"github.com/kiryu-dev/sea-battle/pkg/utils"
	"github.com/pkg/errors"
)

const (
	cellUnknown = '.'
	cellShip    = '#'
	cellHit     = 'X'
	cellMiss    = 'o'
	cellSunk    = '%'

	resetCommand = "reset"
	quitCommand  = "quit"
)

var errQuit = errors.New("quit")

func main() {
	host := flag.String("host", "localhost:8080", "server address")
	flag.Parse()
	health, err := webapi.New().HealthCheck(context.Background(), "http://"+*host)
	if err != nil {
		log.Fatal("server is not available", "host", *host, "err", err)
	}
	log.Info("server is up", "active matches", health.ActiveMatches, "finished matches", health.FinishedMatches)
	u := url.URL{Scheme: "ws", Host: *host, Path: "/game"}
	header := http.Header{}
	header.Set(domain.ClientUuidHeader, uuid.NewString())
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), header)
	if err != nil {
		log.Fatal("dial", "url", u.String(), "err", err)
	}
	defer func() {
		_ = conn.Close()
	}()
	client := newClient(conn)
	if err := client.handleActions(); err != nil && !errors.Is(err, errQuit) {
		log.Fatal("session aborted", "err", err)
	}
}

type grid [domain.BoardSize][domain.BoardSize]rune

func newGrid() grid {
	var g grid
	for r := range g {
		for c := range g[r] {
			g[r][c] = cellUnknown
		}
	}
	return g
}

func (g *grid) set(cells []domain.Coord, mark rune) {
	for _, c := range cells {
		if c.InBounds() {
			g[c.Row][c.Col] = mark
		}
	}
}

type client struct {
	conn      *websocket.Conn
	scanner   *bufio.Scanner
	own       grid
	enemy     grid
	matchUuid string
	status    string
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn:    conn,
		scanner: bufio.NewScanner(os.Stdin),
	}
}

func (c *client) handleActions() error {
	for {
		msg := new(domain.Message)
		if err := c.conn.ReadJSON(msg); err != nil {
			return errors.WithMessage(err, "read json msg")
		}
		var err error
		switch msg.Type {
		case domain.StartMatch:
			err = c.handleStartMatch(msg)
		case domain.RequestAttack:
			err = c.handleRequestAttack()
		case domain.AttackResult:
			err = c.handleAttackResult(msg)
		case domain.MatchOver:
			err = c.handleMatchOver(msg)
		case domain.Error:
			v, decodeErr := utils.UnmarshalJson[domain.ErrorPayload](msg.Payload)
			if decodeErr != nil {
				return errors.WithMessage(decodeErr, "unmarshal json to 'ErrorPayload' type")
			}
			log.Warn("server rejected the request", "reason", v.Reason)
		default:
			log.Debug("skip message", "type", msg.Type)
		}
		if err != nil {
			return err
		}
	}
}

func (c *client) handleStartMatch(msg *domain.Message) error {
	v, err := utils.UnmarshalJson[domain.StartMatchPayload](msg.Payload)
	if err != nil {
		return errors.WithMessage(err, "unmarshal json to 'StartMatchPayload' type")
	}
	c.matchUuid = v.MatchUuid
	c.own, c.enemy = newGrid(), newGrid()
	for _, ship := range v.Fleet {
		c.own.set(ship.Cells, cellShip)
	}
	c.status = "New match " + v.MatchUuid
	c.printBoards()
	return nil
}

func (c *client) handleRequestAttack() error {
	for {
		line, err := c.prompt("Your shot (e.g. B7, reset, quit): ")
		if err != nil {
			return err
		}
		switch line {
		case quitCommand:
			return c.leave()
		case resetCommand:
			return c.write(domain.Message{Type: domain.Reset})
		}
		coord, err := domain.ParseCoord(line)
		if err != nil {
			fmt.Println(err)
			continue
		}
		return c.write(domain.Message{
			Type:    domain.Attack,
			Payload: domain.AttackPayload{Row: coord.Row, Col: coord.Col},
		})
	}
}

func (c *client) handleAttackResult(msg *domain.Message) error {
	v, err := utils.UnmarshalJson[domain.AttackResultPayload](msg.Payload)
	if err != nil {
		return errors.WithMessage(err, "unmarshal json to 'AttackResultPayload' type")
	}
	target := &c.enemy
	if v.Attacker == domain.Opponent {
		target = &c.own
	}
	target.set(v.Revealed, cellMiss)
	switch v.Outcome {
	case domain.OutcomeMiss:
		target.set([]domain.Coord{v.Coord}, cellMiss)
	case domain.OutcomeHit:
		target.set([]domain.Coord{v.Coord}, cellHit)
	case domain.OutcomeSunk:
		target.set([]domain.Coord{v.Coord}, cellHit)
		target.set(v.SunkCells, cellSunk)
	}
	c.status = fmt.Sprintf("%s fired at %s: %s", v.Attacker, v.Coord, v.Outcome)
	c.printBoards()
	return nil
}

func (c *client) handleMatchOver(msg *domain.Message) error {
	v, err := utils.UnmarshalJson[domain.MatchOverPayload](msg.Payload)
	if err != nil {
		return errors.WithMessage(err, "unmarshal json to 'MatchOverPayload' type")
	}
	fmt.Println(v.GameResult)
	for {
		line, err := c.prompt("Play again? (reset / quit): ")
		if err != nil {
			return err
		}
		switch line {
		case resetCommand:
			return c.write(domain.Message{Type: domain.Reset})
		case quitCommand:
			return c.leave()
		}
	}
}

func (c *client) prompt(text string) (string, error) {
	fmt.Print(text)
	if ok := c.scanner.Scan(); !ok {
		if err := c.scanner.Err(); err != nil {
			return "", errors.WithMessage(err, "read stdin")
		}
		return "", errQuit
	}
	return strings.ToLower(strings.TrimSpace(c.scanner.Text())), nil
}

func (c *client) write(msg domain.Message) error {
	if err := c.conn.WriteJSON(msg); err != nil {
		return errors.WithMessage(err, "write json msg")
	}
	return nil
}

func (c *client) leave() error {
	if err := c.write(domain.Message{Type: domain.Leave}); err != nil {
		return err
	}
	return errQuit
}

func (c *client) printBoards() {
	fmt.Printf("\033[H\033[J")
	fmt.Println(c.status)
	header := "   "
	for col := 0; col < domain.BoardSize; col++ {
		header += fmt.Sprintf("%c ", 'A'+col)
	}
	fmt.Printf("%s   %s\n", header, header)
	for r := 0; r < domain.BoardSize; r++ {
		fmt.Printf("%2d %s   %2d %s\n", r+1, string(rowOf(c.own, r)), r+1, string(rowOf(c.enemy, r)))
	}
}

func rowOf(g grid, r int) []rune {
	row := make([]rune, 0, 2*domain.BoardSize)
	for _, cell := range g[r] {
		row = append(row, cell, ' ')
	}
	return row
}
