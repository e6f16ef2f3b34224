package main

import (
	"github.com/Nivl/svcs"
	"github.com/Nivl/svcs/env"
)

func loadRepository(cfg *globalFlags) (*svcs.Repository, error) {
	opts := env.NewOptions(cfg.env)
	return svcs.OpenRepositoryWithOptions(cfg.C.String(), svcs.Options{
		RepoDirName: opts.RepoDirName,
		Logger:      cfg.logger,
	})
}
