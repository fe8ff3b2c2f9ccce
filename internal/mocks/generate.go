package mocks

//go:generate mockgen -destination cmdcontext_mock.go -package mocks github.com/tmeckel/m365-cli/internal/cmd/util CmdContext
//go:generate mockgen -destination exporter_mock.go -package mocks github.com/tmeckel/m365-cli/internal/cmd/util Exporter
//go:generate mockgen -destination m365_client_factory_mock.go -package mocks github.com/tmeckel/m365-cli/internal/m365 ClientFactory
//go:generate mockgen -destination m365_graph_client_mock.go -package mocks github.com/tmeckel/m365-cli/internal/m365 GraphClient
//go:generate mockgen -destination m365_sharepoint_client_mock.go -package mocks github.com/tmeckel/m365-cli/internal/m365 SharePointClient
//go:generate mockgen -destination m365_feed_client_mock.go -package mocks github.com/tmeckel/m365-cli/internal/m365 FeedClient
//go:generate mockgen -destination prompter_mock.go -package mocks github.com/tmeckel/m365-cli/internal/prompter Prompter
//go:generate mockgen -destination config_mock.go -package mocks github.com/tmeckel/m365-cli/internal/config Config
//go:generate mockgen -destination authconfig_mock.go -package mocks github.com/tmeckel/m365-cli/internal/config AuthConfig
