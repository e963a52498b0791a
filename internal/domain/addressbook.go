package domain

import (
	"sort"

	"github.com/ethereum/go-ethereum/common"
)

// wellKnownAddresses maps protocol-reserved contract names to their fixed
// predeploy addresses. Lookups are case sensitive.
var wellKnownAddresses = map[string]common.Address{
	"LegacyMessagePasser":           common.HexToAddress("0x4200000000000000000000000000000000000000"),
	"L1MessageSender":               common.HexToAddress("0x4200000000000000000000000000000000000001"),
	"DeployerWhitelist":             common.HexToAddress("0x4200000000000000000000000000000000000002"),
	"WETH9":                         common.HexToAddress("0x4200000000000000000000000000000000000006"),
	"L2CrossDomainMessenger":        common.HexToAddress("0x4200000000000000000000000000000000000007"),
	"GasPriceOracle":                common.HexToAddress("0x420000000000000000000000000000000000000F"),
	"L2StandardBridge":              common.HexToAddress("0x4200000000000000000000000000000000000010"),
	"SequencerFeeVault":             common.HexToAddress("0x4200000000000000000000000000000000000011"),
	"OptimismMintableERC20Factory":  common.HexToAddress("0x4200000000000000000000000000000000000012"),
	"L1BlockNumber":                 common.HexToAddress("0x4200000000000000000000000000000000000013"),
	"L2ERC721Bridge":                common.HexToAddress("0x4200000000000000000000000000000000000014"),
	"L1Block":                       common.HexToAddress("0x4200000000000000000000000000000000000015"),
	"L2ToL1MessagePasser":           common.HexToAddress("0x4200000000000000000000000000000000000016"),
	"OptimismMintableERC721Factory": common.HexToAddress("0x4200000000000000000000000000000000000017"),
	"ProxyAdmin":                    common.HexToAddress("0x4200000000000000000000000000000000000018"),
	"BaseFeeVault":                  common.HexToAddress("0x4200000000000000000000000000000000000019"),
	"L1FeeVault":                    common.HexToAddress("0x420000000000000000000000000000000000001a"),
	"SchemaRegistry":                common.HexToAddress("0x4200000000000000000000000000000000000020"),
	"EAS":                           common.HexToAddress("0x4200000000000000000000000000000000000021"),
	"GovernanceToken":               common.HexToAddress("0x4200000000000000000000000000000000000042"),
	"LegacyERC20ETH":                common.HexToAddress("0xDeadDeAddeAddEAddeadDEaDDEAdDeaDDeAD0000"),
}

// LookupWellKnown returns the predeploy address registered under name, or the
// zero address when the name is not part of the table.
func LookupWellKnown(name string) common.Address {
	return wellKnownAddresses[name]
}

// WellKnownNames returns the names in the address book, sorted.
func WellKnownNames() []string {
	names := make([]string, 0, len(wellKnownAddresses))
	for name := range wellKnownAddresses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
