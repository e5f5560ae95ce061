package domain

import "time"

// Contract names as they appear in the scarb build output.
const (
	PrizeContract  = "Prize"
	ERC20Contract  = "ERC20"
	Stage1Contract = "Stage1"
	Stage2Contract = "Stage2"
	Stage3Contract = "Stage3"
)

// Donation token metadata passed to the ERC20 constructor.
const (
	DonationTokenName   = "Charity"
	DonationTokenSymbol = "CHA"
)

// PrizeTokenSymbol is the ticker of the prize token minted to each stage.
const PrizeTokenSymbol = "PURR"

// TokenDecimals is the number of decimals of the prize token.
const TokenDecimals = 18

// MintEntrypoint is the prize token entrypoint used to fund stages.
const MintEntrypoint = "mint"

// Prize token amounts, in whole tokens, minted to each stage once it is deployed.
const (
	Stage1Prize = 50
	Stage2Prize = 150
	Stage3Prize = 300
)

// DefaultPause is the delay between staged deployments.
const DefaultPause = 10 * time.Second

// PlanContracts lists every contract the plan deploys, in deployment order.
var PlanContracts = []string{
	PrizeContract,
	ERC20Contract,
	Stage1Contract,
	Stage2Contract,
	Stage3Contract,
}
