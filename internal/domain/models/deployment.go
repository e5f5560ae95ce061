package models

import (
	"math/big"
	"time"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/credence0x/ctf-deploy/internal/domain"
)

// ClassDeclaration is the outcome of declaring a contract class
type ClassDeclaration struct {
	Name      string
	ClassHash *felt.Felt
	// TxHash is nil when the class was already declared on chain
	TxHash *felt.Felt
}

// AlreadyDeclared reports whether the declaration was skipped
func (d *ClassDeclaration) AlreadyDeclared() bool {
	return d.TxHash == nil
}

// DeployedContract is a contract instance deployed during this run
type DeployedContract struct {
	Name      string
	ClassHash *felt.Felt
	Address   *felt.Felt
	TxHash    *felt.Felt
	Calldata  domain.Calldata
}

// Funding is a prize token mint sent to a freshly deployed stage
type Funding struct {
	Token     *felt.Felt
	Recipient *felt.Felt
	Amount    *big.Int
	TxHash    *felt.Felt
	Err       error
}

// Succeeded reports whether the mint was submitted
func (f *Funding) Succeeded() bool {
	return f.Err == nil && f.TxHash != nil
}

// DeploymentRecord is the persisted summary of a deployment run
type DeploymentRecord struct {
	Network     string          `yaml:"network"`
	ChainID     string          `yaml:"chain_id"`
	Account     string          `yaml:"account"`
	StartedAt   time.Time       `yaml:"started_at"`
	CompletedAt *time.Time      `yaml:"completed_at,omitempty"`
	Contracts   []ContractEntry `yaml:"contracts"`
	Fundings    []FundingEntry  `yaml:"fundings,omitempty"`
	// Previous holds earlier runs on the same network, most recent first
	Previous []DeploymentRecord `yaml:"previous,omitempty"`
}

// ContractEntry is a deployed contract as stored in a DeploymentRecord
type ContractEntry struct {
	Name      string   `yaml:"name"`
	ClassHash string   `yaml:"class_hash"`
	Address   string   `yaml:"address"`
	TxHash    string   `yaml:"tx_hash"`
	Calldata  []string `yaml:"calldata,omitempty"`
}

// FundingEntry is a mint as stored in a DeploymentRecord
type FundingEntry struct {
	Token     string `yaml:"token"`
	Recipient string `yaml:"recipient"`
	Amount    string `yaml:"amount"`
	TxHash    string `yaml:"tx_hash,omitempty"`
	Error     string `yaml:"error,omitempty"`
}

// AddContract appends a deployed contract to the record
func (r *DeploymentRecord) AddContract(c *DeployedContract) {
	r.Contracts = append(r.Contracts, ContractEntry{
		Name:      c.Name,
		ClassHash: feltString(c.ClassHash),
		Address:   feltString(c.Address),
		TxHash:    feltString(c.TxHash),
		Calldata:  c.Calldata.Strings(),
	})
}

// AddFunding appends a mint to the record
func (r *DeploymentRecord) AddFunding(f *Funding) {
	entry := FundingEntry{
		Token:     feltString(f.Token),
		Recipient: feltString(f.Recipient),
		TxHash:    feltString(f.TxHash),
	}
	if f.Amount != nil {
		entry.Amount = f.Amount.String()
	}
	if f.Err != nil {
		entry.Error = f.Err.Error()
	}
	r.Fundings = append(r.Fundings, entry)
}

// Archive carries an earlier record and its history into r. Records without
// contracts are dropped.
func (r *DeploymentRecord) Archive(prev *DeploymentRecord) {
	if prev == nil {
		return
	}
	history := prev.Previous
	if len(prev.Contracts) > 0 {
		entry := *prev
		entry.Previous = nil
		history = append([]DeploymentRecord{entry}, history...)
	}
	r.Previous = append(r.Previous, history...)
}

// Contract returns the entry for the named contract, if present
func (r *DeploymentRecord) Contract(name string) (ContractEntry, bool) {
	for _, c := range r.Contracts {
		if c.Name == name {
			return c, true
		}
	}
	return ContractEntry{}, false
}

func feltString(f *felt.Felt) string {
	if f == nil {
		return ""
	}
	return f.String()
}
