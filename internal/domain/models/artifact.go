package models

// Artifact represents a compiled Cairo contract from the scarb build output
type Artifact struct {
	// Name is the contract name, e.g. "Stage1"
	Name string `json:"name"`

	// SierraPath points to the <package>_<Name>.contract_class.json file
	SierraPath string `json:"sierraPath"`

	// CasmPath points to the <package>_<Name>.compiled_contract_class.json file
	CasmPath string `json:"casmPath"`

	// ContractClassVersion as reported by the Sierra class, e.g. "0.1.0"
	ContractClassVersion string `json:"contractClassVersion"`

	// ABIEntries is the number of entries in the class ABI
	ABIEntries int `json:"abiEntries"`
}
