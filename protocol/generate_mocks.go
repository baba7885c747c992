//go:generate mockgen -destination=mocks/mock_protocol.go -package=mocks github.com/popsim/ppsim/protocol TwoWayDeterministic

package protocol
