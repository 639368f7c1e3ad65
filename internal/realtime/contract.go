//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package realtime

// Authenticator resolves a connect token to the id of the user it was issued to.
type Authenticator interface {
	Authenticate(token string) (int64, error)
}
