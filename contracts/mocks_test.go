package contracts

import (
	"crypto/x509"
	"encoding/json"
	"testing"

	"github.com/hyperledger/fabric-chaincode-go/pkg/cid"
	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-chaincode-go/shimtest"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/stretchr/testify/assert"
)

// mockClientIdentity is a fixed client identity for tests
type mockClientIdentity struct {
	id string
}

func (m *mockClientIdentity) GetID() (string, error) {
	return m.id, nil
}

func (m *mockClientIdentity) GetMSPID() (string, error) {
	return "Org1MSP", nil
}

func (m *mockClientIdentity) GetAttributeValue(string) (string, bool, error) {
	return "", false, nil
}

func (m *mockClientIdentity) AssertAttributeValue(string, string) error {
	return nil
}

func (m *mockClientIdentity) GetX509Certificate() (*x509.Certificate, error) {
	return nil, nil
}

// MockTransactionContext is a mock transaction context with a settable caller
type MockTransactionContext struct {
	contractapi.TransactionContext
	stub   *shimtest.MockStub
	caller string
}

func (m *MockTransactionContext) GetStub() shim.ChaincodeStubInterface {
	return m.stub
}

func (m *MockTransactionContext) GetClientIdentity() cid.ClientIdentity {
	return &mockClientIdentity{id: m.caller}
}

// as switches the identity submitting the next operations
func (m *MockTransactionContext) as(caller string) *MockTransactionContext {
	m.caller = caller
	return m
}

func NewMockContext() *MockTransactionContext {
	return &MockTransactionContext{
		stub:   shimtest.NewMockStub("mockStub", nil),
		caller: "admin",
	}
}

// drainEvents collects every event emitted so far
func drainEvents(stub *shimtest.MockStub) []*pb.ChaincodeEvent {
	var events []*pb.ChaincodeEvent
	for {
		select {
		case ev := <-stub.ChaincodeEventsChannel:
			events = append(events, ev)
		default:
			return events
		}
	}
}

// lastEvent returns the most recent event with the given name, decoded into out
func lastEvent(t *testing.T, stub *shimtest.MockStub, name string, out interface{}) bool {
	t.Helper()
	found := false
	for _, ev := range drainEvents(stub) {
		if ev.EventName != name {
			continue
		}
		assert.NoError(t, json.Unmarshal(ev.Payload, out))
		found = true
	}
	return found
}
