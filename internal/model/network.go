package model

// Network names the chain whose parameters are used for keys and addresses.
type Network string

var (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
	Regtest Network = "regtest"
	Signet  Network = "signet"
)

func (n Network) String() string {
	return string(n)
}
