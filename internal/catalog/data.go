package catalog

import "exchange-latency/internal/models"

// exchanges is the built-in exchange server table
var exchanges = []models.Endpoint{
	{
		ID:          "binance-tokyo",
		Name:        "Binance",
		Location:    "Tokyo, Japan",
		Coordinates: models.Coordinates{Lat: 35.6762, Lng: 139.6503},
		Provider:    models.ProviderAWS,
		Region:      "ap-northeast-1",
		Color:       "#F3BA2F",
	},
	{
		ID:          "binance-singapore",
		Name:        "Binance",
		Location:    "Singapore",
		Coordinates: models.Coordinates{Lat: 1.3521, Lng: 103.8198},
		Provider:    models.ProviderAWS,
		Region:      "ap-southeast-1",
		Color:       "#F3BA2F",
	},
	{
		ID:          "binance-ireland",
		Name:        "Binance",
		Location:    "Dublin, Ireland",
		Coordinates: models.Coordinates{Lat: 53.3498, Lng: -6.2603},
		Provider:    models.ProviderAWS,
		Region:      "eu-west-1",
		Color:       "#F3BA2F",
	},
	{
		ID:          "okx-singapore",
		Name:        "OKX",
		Location:    "Singapore",
		Coordinates: models.Coordinates{Lat: 1.3521, Lng: 103.8198},
		Provider:    models.ProviderAWS,
		Region:      "ap-southeast-1",
		Color:       "#00D6B9",
	},
	{
		ID:          "okx-hongkong",
		Name:        "OKX",
		Location:    "Hong Kong",
		Coordinates: models.Coordinates{Lat: 22.3193, Lng: 114.1694},
		Provider:    models.ProviderGCP,
		Region:      "asia-east2",
		Color:       "#00D6B9",
	},
	{
		ID:          "bybit-singapore",
		Name:        "Bybit",
		Location:    "Singapore",
		Coordinates: models.Coordinates{Lat: 1.3521, Lng: 103.8198},
		Provider:    models.ProviderAWS,
		Region:      "ap-southeast-1",
		Color:       "#F7A600",
	},
	{
		ID:          "bybit-tokyo",
		Name:        "Bybit",
		Location:    "Tokyo, Japan",
		Coordinates: models.Coordinates{Lat: 35.6762, Lng: 139.6503},
		Provider:    models.ProviderAWS,
		Region:      "ap-northeast-1",
		Color:       "#F7A600",
	},
	{
		ID:          "deribit-amsterdam",
		Name:        "Deribit",
		Location:    "Amsterdam, Netherlands",
		Coordinates: models.Coordinates{Lat: 52.3676, Lng: 4.9041},
		Provider:    models.ProviderGCP,
		Region:      "europe-west4",
		Color:       "#FF6B6B",
	},
	{
		ID:          "coinbase-virginia",
		Name:        "Coinbase",
		Location:    "Virginia, USA",
		Coordinates: models.Coordinates{Lat: 37.4316, Lng: -78.6569},
		Provider:    models.ProviderAWS,
		Region:      "us-east-1",
		Color:       "#0052FF",
	},
	{
		ID:          "coinbase-oregon",
		Name:        "Coinbase",
		Location:    "Oregon, USA",
		Coordinates: models.Coordinates{Lat: 43.8041, Lng: -120.5542},
		Provider:    models.ProviderGCP,
		Region:      "us-west1",
		Color:       "#0052FF",
	},
	{
		ID:          "kraken-frankfurt",
		Name:        "Kraken",
		Location:    "Frankfurt, Germany",
		Coordinates: models.Coordinates{Lat: 50.1109, Lng: 8.6821},
		Provider:    models.ProviderAzure,
		Region:      "germanywestcentral",
		Color:       "#5741D9",
	},
	{
		ID:          "kraken-tokyo",
		Name:        "Kraken",
		Location:    "Tokyo, Japan",
		Coordinates: models.Coordinates{Lat: 35.6762, Lng: 139.6503},
		Provider:    models.ProviderAzure,
		Region:      "japaneast",
		Color:       "#5741D9",
	},
	{
		ID:          "bitfinex-london",
		Name:        "Bitfinex",
		Location:    "London, UK",
		Coordinates: models.Coordinates{Lat: 51.5074, Lng: -0.1278},
		Provider:    models.ProviderAWS,
		Region:      "eu-west-2",
		Color:       "#2ECC71",
	},
	{
		ID:          "huobi-singapore",
		Name:        "Huobi",
		Location:    "Singapore",
		Coordinates: models.Coordinates{Lat: 1.3521, Lng: 103.8198},
		Provider:    models.ProviderAWS,
		Region:      "ap-southeast-1",
		Color:       "#2EACD9",
	},
	{
		ID:          "kucoin-singapore",
		Name:        "KuCoin",
		Location:    "Singapore",
		Coordinates: models.Coordinates{Lat: 1.3521, Lng: 103.8198},
		Provider:    models.ProviderGCP,
		Region:      "asia-southeast1",
		Color:       "#24AE8F",
	},
	{
		ID:          "gate-seoul",
		Name:        "Gate.io",
		Location:    "Seoul, South Korea",
		Coordinates: models.Coordinates{Lat: 37.5665, Lng: 126.9780},
		Provider:    models.ProviderAWS,
		Region:      "ap-northeast-2",
		Color:       "#17E3A0",
	},
}

// regions is the built-in cloud region table
var regions = []models.CloudRegion{
	{
		ID:          "aws-us-east-1",
		Provider:    models.ProviderAWS,
		Name:        "US East (N. Virginia)",
		Code:        "us-east-1",
		Coordinates: models.Coordinates{Lat: 37.4316, Lng: -78.6569},
		ServerCount: 1,
	},
	{
		ID:          "aws-us-west-1",
		Provider:    models.ProviderAWS,
		Name:        "US West (Oregon)",
		Code:        "us-west-1",
		Coordinates: models.Coordinates{Lat: 43.8041, Lng: -120.5542},
		ServerCount: 0,
	},
	{
		ID:          "aws-eu-west-1",
		Provider:    models.ProviderAWS,
		Name:        "EU (Ireland)",
		Code:        "eu-west-1",
		Coordinates: models.Coordinates{Lat: 53.3498, Lng: -6.2603},
		ServerCount: 1,
	},
	{
		ID:          "aws-eu-west-2",
		Provider:    models.ProviderAWS,
		Name:        "EU (London)",
		Code:        "eu-west-2",
		Coordinates: models.Coordinates{Lat: 51.5074, Lng: -0.1278},
		ServerCount: 1,
	},
	{
		ID:          "aws-ap-southeast-1",
		Provider:    models.ProviderAWS,
		Name:        "Asia Pacific (Singapore)",
		Code:        "ap-southeast-1",
		Coordinates: models.Coordinates{Lat: 1.3521, Lng: 103.8198},
		ServerCount: 4,
	},
	{
		ID:          "aws-ap-northeast-1",
		Provider:    models.ProviderAWS,
		Name:        "Asia Pacific (Tokyo)",
		Code:        "ap-northeast-1",
		Coordinates: models.Coordinates{Lat: 35.6762, Lng: 139.6503},
		ServerCount: 2,
	},
	{
		ID:          "aws-ap-northeast-2",
		Provider:    models.ProviderAWS,
		Name:        "Asia Pacific (Seoul)",
		Code:        "ap-northeast-2",
		Coordinates: models.Coordinates{Lat: 37.5665, Lng: 126.9780},
		ServerCount: 1,
	},
	{
		ID:          "gcp-us-west1",
		Provider:    models.ProviderGCP,
		Name:        "us-west1 (Oregon)",
		Code:        "us-west1",
		Coordinates: models.Coordinates{Lat: 45.5152, Lng: -122.6784},
		ServerCount: 1,
	},
	{
		ID:          "gcp-europe-west4",
		Provider:    models.ProviderGCP,
		Name:        "europe-west4 (Netherlands)",
		Code:        "europe-west4",
		Coordinates: models.Coordinates{Lat: 52.3676, Lng: 4.9041},
		ServerCount: 1,
	},
	{
		ID:          "gcp-asia-east2",
		Provider:    models.ProviderGCP,
		Name:        "asia-east2 (Hong Kong)",
		Code:        "asia-east2",
		Coordinates: models.Coordinates{Lat: 22.3193, Lng: 114.1694},
		ServerCount: 1,
	},
	{
		ID:          "gcp-asia-southeast1",
		Provider:    models.ProviderGCP,
		Name:        "asia-southeast1 (Singapore)",
		Code:        "asia-southeast1",
		Coordinates: models.Coordinates{Lat: 1.3521, Lng: 103.8198},
		ServerCount: 1,
	},
	{
		ID:          "azure-germanywestcentral",
		Provider:    models.ProviderAzure,
		Name:        "Germany West Central",
		Code:        "germanywestcentral",
		Coordinates: models.Coordinates{Lat: 50.1109, Lng: 8.6821},
		ServerCount: 1,
	},
	{
		ID:          "azure-japaneast",
		Provider:    models.ProviderAzure,
		Name:        "Japan East",
		Code:        "japaneast",
		Coordinates: models.Coordinates{Lat: 35.6762, Lng: 139.6503},
		ServerCount: 1,
	},
}
