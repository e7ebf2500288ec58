package config

import "time"

// UI and Display Constants
const (
	// Pagination
	CardsPerPage    = 10
	DefaultPageSize = 10

	// Colors
	ErrorColor   = 0xFF0000
	SuccessColor = 0x00FF00
	InfoColor    = 0x0099FF
	WarningColor = 0xFFAA00

	EmbedDefaultColor = 0x2B2D31
	BattleColor       = 0x00FF00
	WonderPickColor   = 0xFFD700
	PackColor         = 0x0099FF
)

// Database and Performance Constants
const (
	DefaultQueryTimeout     = 30 * time.Second
	BatchQueryTimeout       = 30 * time.Second
	CommandExecutionTimeout = 10 * time.Second
	NetworkDialTimeout      = 5 * time.Second
)

// Game Mechanics Constants
const (
	// Pack opening
	PackSize             = 5
	MinCandidatePoolSize = 25

	// Trade protocol
	TradeResponseWindow = 60 * time.Second

	// Battle
	MinimumDamage = 1
)

// Catalog Client Constants
const (
	CatalogRequestTimeout = 15 * time.Second
	CatalogCacheSize      = 10000
	MaxSearchResults      = 25
)
