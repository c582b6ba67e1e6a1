package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type OTCConfig struct {
	Env           string  `yaml:"env"`
	HTTPServer    `yaml:"http_server"`
	OTCDB         `yaml:"otc_db"`
	LogConfig     `yaml:"log_config"`
	KafkaService  `yaml:"kafka-service"`
	BankService   `yaml:"bank-service"`
	SettleService `yaml:"settle-service"`
	AuthService   `yaml:"auth-service"`
	Trading       Trading `yaml:"trading"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type OTCDB struct {
	Dsn           string `yaml:"dsn"`
	MigrationPath string `yaml:"migration_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type KafkaService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type BankService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type SettleService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type AuthService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

// Trading is the static rendition of the trading parameter set: symbols,
// percentages in basis points of PercentBoost, timeouts in seconds.
type Trading struct {
	Status            string      `yaml:"status" env-default:"RUNNING"`
	FiatSymbol        string      `yaml:"fiat_symbol"`
	FiatPrecision     uint8       `yaml:"fiat_precision"`
	Coins             []CoinYAML  `yaml:"coins"`
	StakeAssets       []StakeYAML `yaml:"stake_assets"`
	BuyCoins          []string    `yaml:"buy_coins"`
	SellCoins         []string    `yaml:"sell_coins"`
	PayMethods        []string    `yaml:"pay_methods"`
	StakePct          int64       `yaml:"stake_pct"`
	FeePct            int64       `yaml:"fee_pct"`
	AcceptedTimeoutS  int64       `yaml:"accepted_timeout_seconds"`
	PayedTimeoutS     int64       `yaml:"payed_timeout_seconds"`
	AdminAccount      string      `yaml:"admin_account"`
	SettleAccount     string      `yaml:"settle_account"`
	FeeSplitAccount   string      `yaml:"fee_split_account"`
	FeeSplitPlanID    uint64      `yaml:"fee_split_plan_id"`
	ReferenceStakeSym string      `yaml:"reference_stake_symbol"`
}

type CoinYAML struct {
	Symbol      string `yaml:"symbol"`
	Precision   uint8  `yaml:"precision"`
	StakeSymbol string `yaml:"stake_symbol"`
}

type StakeYAML struct {
	Symbol         string `yaml:"symbol"`
	Precision      uint8  `yaml:"precision"`
	CustodyAccount string `yaml:"custody_account"`
}

func MustLoad() *OTCConfig {

	// Processing env config variable and file
	configPath := os.Getenv("OTC_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("OTC_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg OTCConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
