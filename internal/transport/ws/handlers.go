package ws

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/kiryu-dev/sea-battle/internal/domain"
	"github.com/kiryu-dev/sea-battle/pkg/utils"
	"go.uber.org/zap"
)

func (s *server) serveWs(w http.ResponseWriter, r *http.Request) {
	clientUuid := strings.TrimSpace(r.Header.Get(domain.ClientUuidHeader))
	if clientUuid == "" {
		clientUuid = uuid.NewString()
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error(err.Error())
		return
	}
	s.logger.Info("new connection", zap.String("client uuid", clientUuid), zap.String("remote", conn.RemoteAddr().String()))
	client := newClient(conn, clientUuid)
	defer client.Close()
	if err := s.hub.Handle(r.Context(), client); err != nil {
		s.logger.Error(err.Error(), zap.String("client uuid", clientUuid))
	}
}

func (s *server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	stats := s.hub.Stats()
	body, err := utils.MarshalJson(domain.HealthCheckResponse{
		Status:          "ok",
		ActiveMatches:   stats.ActiveMatches,
		StartedMatches:  stats.StartedMatches,
		FinishedMatches: stats.FinishedMatches,
	})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		s.logger.Warn(err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(body); err != nil {
		s.logger.Warn(err.Error())
	}
}
