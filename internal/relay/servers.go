package relay

// DefaultServers is the public server pool used when none is configured.
var DefaultServers = []string{
	"oast.pro",
	"oast.live",
	"oast.site",
	"oast.online",
	"oast.fun",
}

// PickServer returns servers[intn(len(servers))], or oast.pro when servers
// is empty. intn is typically math/rand/v2.IntN.
func PickServer(servers []string, intn func(int) int) string {
	if len(servers) == 0 {
		return "oast.pro"
	}
	i := intn(len(servers))
	if i < 0 || i >= len(servers) {
		i = 0
	}
	return servers[i]
}
