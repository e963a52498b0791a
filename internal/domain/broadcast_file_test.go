package domain

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	greeterAddr = common.HexToAddress("0xaa00000000000000000000000000000000000001")
	tokenAddr   = common.HexToAddress("0xaa00000000000000000000000000000000000002")
	factoryAddr = common.HexToAddress("0xaa00000000000000000000000000000000000003")
)

func testBroadcast() *BroadcastFile {
	return &BroadcastFile{
		Transactions: []BroadcastTransaction{
			{
				Hash:            "0xcall",
				TransactionType: TransactionTypeCall,
				ContractName:    "Greeter",
				ContractAddress: greeterAddr.Hex(),
			},
			{
				Hash:            "0x01",
				TransactionType: TransactionTypeCreate,
				ContractName:    "Greeter",
				ContractAddress: "0xAA00000000000000000000000000000000000001",
				Arguments:       []string{"hello"},
			},
			{
				Hash:            "0x02",
				TransactionType: TransactionTypeCreate2,
				ContractName:    "Greeter",
				ContractAddress: greeterAddr.Hex(),
				Arguments:       []string{"second"},
			},
			{
				Hash:            "0x03",
				TransactionType: TransactionTypeCall,
				ContractName:    "TokenFactory",
				ContractAddress: factoryAddr.Hex(),
				AdditionalContracts: []AdditionalContract{
					{TransactionType: TransactionTypeCreate, ContractName: "Token", ContractAddress: tokenAddr.Hex()},
				},
			},
		},
		Receipts: []BroadcastReceipt{
			{TransactionHash: "0x01", ContractAddress: greeterAddr.Hex()},
			{TransactionHash: "0x03"},
		},
	}
}

func TestTransactionType_IsCreation(t *testing.T) {
	assert.True(t, TransactionTypeCreate.IsCreation())
	assert.True(t, TransactionTypeCreate2.IsCreation())
	assert.False(t, TransactionTypeCall.IsCreation())
	assert.False(t, TransactionType("").IsCreation())
}

func TestBroadcastFile_FindCreation(t *testing.T) {
	b := testBroadcast()

	t.Run("first creation wins", func(t *testing.T) {
		creation, ok := b.FindCreation(greeterAddr)
		require.True(t, ok)
		assert.Equal(t, "0x01", creation.Hash)
		assert.Equal(t, "Greeter", creation.ContractName)
		assert.Equal(t, []string{"hello"}, creation.Arguments)
		assert.False(t, creation.Factory)
	})

	t.Run("factory deployment", func(t *testing.T) {
		creation, ok := b.FindCreation(tokenAddr)
		require.True(t, ok)
		assert.Equal(t, "0x03", creation.Hash)
		assert.Equal(t, "Token", creation.ContractName)
		assert.Nil(t, creation.Arguments)
		assert.True(t, creation.Factory)
	})

	t.Run("calls do not count", func(t *testing.T) {
		_, ok := b.FindCreation(factoryAddr)
		assert.False(t, ok)
	})

	t.Run("unknown address", func(t *testing.T) {
		_, ok := b.FindCreation(common.HexToAddress("0xbb00000000000000000000000000000000000001"))
		assert.False(t, ok)
	})
}

func TestBroadcastFile_FindReceipt(t *testing.T) {
	b := testBroadcast()

	receipt, ok := b.FindReceipt(greeterAddr, "0x01")
	require.True(t, ok)
	assert.Equal(t, "0x01", receipt.TransactionHash)

	// Factory deployments have no contractAddress on the receipt
	receipt, ok = b.FindReceipt(tokenAddr, "0x03")
	require.True(t, ok)
	assert.Equal(t, "0x03", receipt.TransactionHash)

	_, ok = b.FindReceipt(tokenAddr, "")
	assert.False(t, ok)
}

func TestBroadcastReceipt_RoundTripsRawDocument(t *testing.T) {
	doc := `{"transactionHash":"0x01","status":"0x1","logs":[],"gasUsed":"0x5208"}`

	var receipt BroadcastReceipt
	require.NoError(t, json.Unmarshal([]byte(doc), &receipt))
	assert.Equal(t, "0x01", receipt.TransactionHash)

	out, err := json.Marshal(receipt)
	require.NoError(t, err)
	assert.JSONEq(t, doc, string(out))
}

func TestBroadcastFile_AdditionalContractAddressKey(t *testing.T) {
	doc := `{"transactions":[{"hash":"0x03","transactionType":"CALL","contractName":"TokenFactory",
		"contractAddress":"0xaa00000000000000000000000000000000000003",
		"additionalContracts":[{"transactionType":"CREATE2","address":"0xaa00000000000000000000000000000000000002","initCode":"0x"}]}],
		"receipts":[]}`

	var b BroadcastFile
	require.NoError(t, json.Unmarshal([]byte(doc), &b))

	creation, ok := b.FindCreation(tokenAddr)
	require.True(t, ok)
	// Without its own name the factory's name is used
	assert.Equal(t, "TokenFactory", creation.ContractName)
}
