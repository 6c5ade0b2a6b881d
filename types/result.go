package types

// TxResult contains the result of a confirmed contract call
type TxResult struct {
	Hash     string
	Function string
	Sender   string
	Version  string
}
