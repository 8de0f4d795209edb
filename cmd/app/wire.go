//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/ethix-logistics/internal/bootstrap"
	"github.com/yanqian/ethix-logistics/internal/domain/advisor"
	"github.com/yanqian/ethix-logistics/internal/domain/checkout"
	"github.com/yanqian/ethix-logistics/internal/domain/report"
	"github.com/yanqian/ethix-logistics/internal/domain/storefront"
	"github.com/yanqian/ethix-logistics/internal/infra/config"
	httpiface "github.com/yanqian/ethix-logistics/internal/interface/http"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		provideLogger,
		provideRoutingEngine,
		provideCheckoutConfig,
		provideAdvisorConfig,
		provideRemoteAdvisor,
		provideBlobStore,
		advisor.NewService,
		storefront.NewContainer,
		checkout.NewService,
		report.NewService,
		wire.Bind(new(checkout.Store), new(*storefront.Container)),
		wire.Bind(new(report.Source), new(*storefront.Container)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
