package dapps

import (
	"testing"

	"github.com/astar-network/dapp-staking-v3/crypto"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestEVMContractBytesRoundTrip(t *testing.T) {
	addr := common.HexToAddress("0x1111111111111111111111111111111111111111")
	c := NewEVMContract(addr)

	decoded, err := ContractFromBytes(c.Bytes())
	require.NoError(t, err)
	require.True(t, c.Equal(decoded))
	require.Equal(t, KindEVM, decoded.Kind())
}

func TestWasmContractBytesRoundTrip(t *testing.T) {
	var id [32]byte
	for i := range id {
		id[i] = byte(i)
	}
	c := NewWasmContract(id)

	decoded, err := ContractFromBytes(c.Bytes())
	require.NoError(t, err)
	require.True(t, c.Equal(decoded))
	require.Equal(t, KindWasm, decoded.Kind())
}

func TestContractFromBytesRejectsBadLength(t *testing.T) {
	_, err := ContractFromBytes([]byte{byte(KindEVM), 1, 2})
	require.Error(t, err)

	_, err = ContractFromBytes(nil)
	require.Error(t, err)
}

func TestContractLessOrdersByKindThenBytes(t *testing.T) {
	evm := NewEVMContract(common.HexToAddress("0xffffffffffffffffffffffffffffffffffffffff"))
	var wasmID [32]byte
	wasm := NewWasmContract(wasmID)
	require.True(t, evm.Less(wasm))
	require.False(t, wasm.Less(evm))

	low := NewEVMContract(common.HexToAddress("0x0000000000000000000000000000000000000001"))
	high := NewEVMContract(common.HexToAddress("0x0000000000000000000000000000000000000002"))
	require.True(t, low.Less(high))
}

func TestContractKeyStable(t *testing.T) {
	addr := common.HexToAddress("0x2222222222222222222222222222222222222222")
	a := NewEVMContract(addr)
	b := NewEVMContract(addr)
	require.Equal(t, a.Key(), b.Key())
}

func TestInfoBeneficiaryFallsBackToOwner(t *testing.T) {
	owner := crypto.MustAddressFromBytes(make([]byte, 20))
	info := Info{Owner: owner, State: StateRegistered}
	require.True(t, info.Beneficiary().Equal(owner))
	require.True(t, info.IsRegistered())
}

func TestInfoCloneDeepCopiesBeneficiary(t *testing.T) {
	owner := crypto.MustAddressFromBytes(make([]byte, 20))
	other := crypto.RandomAddress()
	info := Info{Owner: owner, RewardBeneficiary: &other}
	clone := info.Clone()
	*clone.RewardBeneficiary = crypto.RandomAddress()
	require.True(t, info.RewardBeneficiary.Equal(other))
}
