package main

import (
	"k8s.io/klog/v2"

	"github.com/buildhub-lab/buildhub/cmd/buildhub/helper"
	"github.com/buildhub-lab/buildhub/pkg/metrics"
)

// @title						BuildHub API
// @version					1.0.0
// @description				Web backend of the BuildHub package build platform.
// @securityDefinitions.apikey	Bearer
// @in							header
// @name						Authorization
func main() {
	configInit := helper.NewConfigInitializer()
	backendConfig := configInit.GetBackendConfig()

	if err := configInit.LoadDebugEnvironment(); err != nil {
		klog.Fatalf("Failed to load env: %s", err)
	}

	registerConfig, err := configInit.InitializeRegisterConfig()
	if err != nil {
		klog.Fatalf("Failed to register config: %s", err)
	}

	refreshSpec := backendConfig.Metrics.QueueRefreshSpec
	if refreshSpec == "" {
		refreshSpec = "@every 30s"
	}
	exporter, err := metrics.NewExporter(registerConfig.Complex, refreshSpec)
	if err != nil {
		klog.Fatalf("Failed to set up queue metrics: %s", err)
	}
	exporter.Start()
	defer exporter.Stop()

	serverRunner := helper.NewServerRunner(backendConfig)
	serverRunner.StartServer(registerConfig)
}
