package networkname

const (
	MainChainName = "main"
	TestChainName = "test"
	SoloChainName = "solo"
)

var All = []string{
	MainChainName,
	TestChainName,
	SoloChainName,
}
