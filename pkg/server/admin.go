package server

import (
	"fmt"

	"github.com/NeuralTrust/AuthShield/pkg/config"
	"github.com/NeuralTrust/AuthShield/pkg/server/router"
	"github.com/sirupsen/logrus"
)

type (
	AdminServerDI struct {
		Config  *config.Config
		Logger  *logrus.Logger
		Routers []router.ServerRouter
	}
	// AdminServer serves the authentication endpoint and the admin API on
	// server.admin_port, and metrics on server.metrics_port.
	AdminServer struct {
		*BaseServer
		routers []router.ServerRouter
	}
)

func NewAdminServer(di AdminServerDI) *AdminServer {
	return &AdminServer{
		BaseServer: NewBaseServer(di.Config, di.Logger),
		routers:    di.Routers,
	}
}

func (s *AdminServer) Run() error {
	s.setupHealthCheck()
	s.WithRouters(s.routers...)
	s.setupMetricsEndpoint()

	addr := fmt.Sprintf(":%d", s.Config.Server.AdminPort)
	s.Logger.WithField("addr", addr).Info("starting admin server")
	return s.Router.Listen(addr)
}

func (s *AdminServer) Shutdown() error {
	return s.shutdown()
}
