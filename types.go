package nftjson

// Closed wire vocabularies. Every enumerator maps to exactly one lowercase
// token (or symbol); decoding rejects anything outside the set.

// Family is the protocol family of a table.
type Family string

const (
	FamilyIP     Family = "ip"
	FamilyIP6    Family = "ip6"
	FamilyINet   Family = "inet"
	FamilyARP    Family = "arp"
	FamilyBridge Family = "bridge"
	FamilyNetDev Family = "netdev"
)

var familySet = tokenSet(FamilyIP, FamilyIP6, FamilyINet, FamilyARP, FamilyBridge, FamilyNetDev)

// ChainType is the type of a base chain.
type ChainType string

const (
	ChainTypeFilter ChainType = "filter"
	ChainTypeRoute  ChainType = "route"
	ChainTypeNAT    ChainType = "nat"
)

var chainTypeSet = tokenSet(ChainTypeFilter, ChainTypeRoute, ChainTypeNAT)

// ChainPolicy is the default verdict of a base chain.
type ChainPolicy string

const (
	ChainPolicyAccept ChainPolicy = "accept"
	ChainPolicyDrop   ChainPolicy = "drop"
)

var chainPolicySet = tokenSet(ChainPolicyAccept, ChainPolicyDrop)

// Hook is a netfilter hook a base chain or flowtable attaches to.
type Hook string

const (
	HookIngress     Hook = "ingress"
	HookPrerouting  Hook = "prerouting"
	HookForward     Hook = "forward"
	HookInput       Hook = "input"
	HookOutput      Hook = "output"
	HookPostrouting Hook = "postrouting"
	HookEgress      Hook = "egress"
)

var hookSet = tokenSet(HookIngress, HookPrerouting, HookForward, HookInput, HookOutput, HookPostrouting, HookEgress)

// SetType is the datatype of a named set or map component.
type SetType string

const (
	TypeIPv4Addr    SetType = "ipv4_addr"
	TypeIPv6Addr    SetType = "ipv6_addr"
	TypeEtherAddr   SetType = "ether_addr"
	TypeInetProto   SetType = "inet_proto"
	TypeInetService SetType = "inet_service"
	TypeMark        SetType = "mark"
	TypeIfname      SetType = "ifname"
)

var setTypeSet = tokenSet(TypeIPv4Addr, TypeIPv6Addr, TypeEtherAddr, TypeInetProto, TypeInetService, TypeMark, TypeIfname)

// SetPolicy selects the kernel's set storage strategy.
type SetPolicy string

const (
	SetPolicyPerformance SetPolicy = "performance"
	SetPolicyMemory      SetPolicy = "memory"
)

var setPolicySet = tokenSet(SetPolicyPerformance, SetPolicyMemory)

// SetFlag is a behavior flag of a named set or map.
type SetFlag string

const (
	SetFlagConstant SetFlag = "constant"
	SetFlagInterval SetFlag = "interval"
	SetFlagTimeout  SetFlag = "timeout"
	SetFlagDynamic  SetFlag = "dynamic"
)

var setFlagSet = tokenSet(SetFlagConstant, SetFlagInterval, SetFlagTimeout, SetFlagDynamic)

// SetOp selects how a dynamic set/map/flow statement manipulates elements.
type SetOp string

const (
	SetOpAdd    SetOp = "add"
	SetOpUpdate SetOp = "update"
)

var setOpSet = tokenSet(SetOpAdd, SetOpUpdate)

// CTProto is a conntrack layer 4 protocol.
type CTProto string

const (
	CTProtoTCP     CTProto = "tcp"
	CTProtoUDP     CTProto = "udp"
	CTProtoDCCP    CTProto = "dccp"
	CTProtoSCTP    CTProto = "sctp"
	CTProtoGRE     CTProto = "gre"
	CTProtoICMPv6  CTProto = "icmpv6"
	CTProtoICMP    CTProto = "icmp"
	CTProtoGeneric CTProto = "generic"
)

var ctProtoSet = tokenSet(CTProtoTCP, CTProtoUDP, CTProtoDCCP, CTProtoSCTP, CTProtoGRE, CTProtoICMPv6, CTProtoICMP, CTProtoGeneric)

// RejectType selects the kind of reject reply.
type RejectType string

const (
	RejectTypeTCPReset RejectType = "tcp reset"
	RejectTypeICMPX    RejectType = "icmpx"
	RejectTypeICMP     RejectType = "icmp"
	RejectTypeICMPv6   RejectType = "icmpv6"
)

var rejectTypeSet = tokenSet(RejectTypeTCPReset, RejectTypeICMPX, RejectTypeICMP, RejectTypeICMPv6)

// RejectCode is the ICMP(v6) code sent with a reject.
type RejectCode string

const (
	RejectAdminProhibited RejectCode = "admin-prohibited"
	RejectPortUnreachable RejectCode = "port-unreachable"
	RejectNoRoute         RejectCode = "no-route"
	RejectHostUnreachable RejectCode = "host-unreachable"
	RejectNetUnreachable  RejectCode = "net-unreachable"
	RejectProtUnreachable RejectCode = "prot-unreachable"
	RejectNetProhibited   RejectCode = "net-prohibited"
	RejectHostProhibited  RejectCode = "host-prohibited"
	RejectAddrUnreachable RejectCode = "addr-unreachable"
)

var rejectCodeSet = tokenSet(RejectAdminProhibited, RejectPortUnreachable, RejectNoRoute,
	RejectHostUnreachable, RejectNetUnreachable, RejectProtUnreachable, RejectNetProhibited,
	RejectHostProhibited, RejectAddrUnreachable)

// SynProxyFlag tunes TCP option passthrough of a synproxy.
type SynProxyFlag string

const (
	SynProxyFlagTimestamp SynProxyFlag = "timestamp"
	SynProxyFlagSackPerm  SynProxyFlag = "sack-perm"
)

var synProxyFlagSet = tokenSet(SynProxyFlagTimestamp, SynProxyFlagSackPerm)

// TimeUnit is the denominator of a rate limit.
type TimeUnit string

const (
	UnitSecond TimeUnit = "second"
	UnitMinute TimeUnit = "minute"
	UnitHour   TimeUnit = "hour"
	UnitDay    TimeUnit = "day"
	UnitWeek   TimeUnit = "week"
)

var timeUnitSet = tokenSet(UnitSecond, UnitMinute, UnitHour, UnitDay, UnitWeek)

// LimitUnit is the numerator unit of a named limit.
type LimitUnit string

const (
	LimitUnitPackets LimitUnit = "packets"
	LimitUnitBytes   LimitUnit = "bytes"
)

var limitUnitSet = tokenSet(LimitUnitPackets, LimitUnitBytes)

// LogLevel is the syslog level of a log statement.
type LogLevel string

const (
	LogLevelEmerg  LogLevel = "emerg"
	LogLevelAlert  LogLevel = "alert"
	LogLevelCrit   LogLevel = "crit"
	LogLevelErr    LogLevel = "err"
	LogLevelWarn   LogLevel = "warn"
	LogLevelNotice LogLevel = "notice"
	LogLevelInfo   LogLevel = "info"
	LogLevelDebug  LogLevel = "debug"
	LogLevelAudit  LogLevel = "audit"
)

var logLevelSet = tokenSet(LogLevelEmerg, LogLevelAlert, LogLevelCrit, LogLevelErr,
	LogLevelWarn, LogLevelNotice, LogLevelInfo, LogLevelDebug, LogLevelAudit)

// LogFlag requests extra detail in log output.
type LogFlag string

const (
	LogFlagTCPSequence LogFlag = "tcp sequence"
	LogFlagTCPOptions  LogFlag = "tcp options"
	LogFlagIPOptions   LogFlag = "ip options"
	LogFlagSkuid       LogFlag = "skuid"
	LogFlagEther       LogFlag = "ether"
	LogFlagAll         LogFlag = "all"
)

var logFlagSet = tokenSet(LogFlagTCPSequence, LogFlagTCPOptions, LogFlagIPOptions, LogFlagSkuid, LogFlagEther, LogFlagAll)

// NATKind selects the NAT statement variant.
type NATKind string

const (
	NATKindSNAT       NATKind = "snat"
	NATKindDNAT       NATKind = "dnat"
	NATKindMasquerade NATKind = "masquerade"
	NATKindRedirect   NATKind = "redirect"
)

// NATFamily is the address family a NAT statement translates within.
type NATFamily string

const (
	NATFamilyIP  NATFamily = "ip"
	NATFamilyIP6 NATFamily = "ip6"
)

var natFamilySet = tokenSet(NATFamilyIP, NATFamilyIP6)

// NATFlag tunes port/address selection of a NAT statement.
type NATFlag string

const (
	NATFlagRandom      NATFlag = "random"
	NATFlagFullyRandom NATFlag = "fully-random"
	NATFlagPersistent  NATFlag = "persistent"
)

var natFlagSet = tokenSet(NATFlagRandom, NATFlagFullyRandom, NATFlagPersistent)

// FWDFamily is the address family of a fwd statement target.
type FWDFamily string

const (
	FWDFamilyIP  FWDFamily = "ip"
	FWDFamilyIP6 FWDFamily = "ip6"
)

var fwdFamilySet = tokenSet(FWDFamilyIP, FWDFamilyIP6)

// QueueFlag tunes delivery to a userspace queue.
type QueueFlag string

const (
	QueueFlagBypass QueueFlag = "bypass"
	QueueFlagFanout QueueFlag = "fanout"
)

var queueFlagSet = tokenSet(QueueFlagBypass, QueueFlagFanout)

// PayloadBase is the protocol-layer reference point of a raw payload expression.
type PayloadBase string

const (
	PayloadBaseLL PayloadBase = "ll" // link layer
	PayloadBaseNH PayloadBase = "nh" // network header
	PayloadBaseTH PayloadBase = "th" // transport header
	PayloadBaseIH PayloadBase = "ih" // inner header
)

var payloadBaseSet = tokenSet(PayloadBaseLL, PayloadBaseNH, PayloadBaseTH, PayloadBaseIH)

// MetaKey names a piece of packet meta data.
type MetaKey string

const (
	MetaKeyPkttype     MetaKey = "pkttype"
	MetaKeyLength      MetaKey = "length"
	MetaKeyProtocol    MetaKey = "protocol"
	MetaKeyNfproto     MetaKey = "nfproto"
	MetaKeyL4proto     MetaKey = "l4proto"
	MetaKeyIif         MetaKey = "iif"
	MetaKeyIifname     MetaKey = "iifname"
	MetaKeyIiftype     MetaKey = "iiftype"
	MetaKeyIifkind     MetaKey = "iifkind"
	MetaKeyIifgroup    MetaKey = "iifgroup"
	MetaKeyOif         MetaKey = "oif"
	MetaKeyOifname     MetaKey = "oifname"
	MetaKeyOiftype     MetaKey = "oiftype"
	MetaKeyOifkind     MetaKey = "oifkind"
	MetaKeyOifgroup    MetaKey = "oifgroup"
	MetaKeyIbridgename MetaKey = "ibridgename"
	MetaKeyObridgename MetaKey = "obridgename"
	MetaKeyIbriport    MetaKey = "ibriport"
	MetaKeyObriport    MetaKey = "obriport"
	MetaKeyMark        MetaKey = "mark"
	MetaKeyPriority    MetaKey = "priority"
	MetaKeyRtclassid   MetaKey = "rtclassid"
	MetaKeySkuid       MetaKey = "skuid"
	MetaKeySkgid       MetaKey = "skgid"
	MetaKeyCPU         MetaKey = "cpu"
	MetaKeyCgroup      MetaKey = "cgroup"
	MetaKeySecpath     MetaKey = "secpath"
	MetaKeyRandom      MetaKey = "random"
	MetaKeyNftrace     MetaKey = "nftrace"
)

var metaKeySet = tokenSet(MetaKeyPkttype, MetaKeyLength, MetaKeyProtocol, MetaKeyNfproto,
	MetaKeyL4proto, MetaKeyIif, MetaKeyIifname, MetaKeyIiftype, MetaKeyIifkind, MetaKeyIifgroup,
	MetaKeyOif, MetaKeyOifname, MetaKeyOiftype, MetaKeyOifkind, MetaKeyOifgroup,
	MetaKeyIbridgename, MetaKeyObridgename, MetaKeyIbriport, MetaKeyObriport,
	MetaKeyMark, MetaKeyPriority, MetaKeyRtclassid, MetaKeySkuid, MetaKeySkgid,
	MetaKeyCPU, MetaKeyCgroup, MetaKeySecpath, MetaKeyRandom, MetaKeyNftrace)

// RTKey names a piece of packet routing data.
type RTKey string

const (
	RTKeyClassID RTKey = "classid"
	RTKeyNexthop RTKey = "nexthop"
	RTKeyMTU     RTKey = "mtu"
)

var rtKeySet = tokenSet(RTKeyClassID, RTKeyNexthop, RTKeyMTU)

// RTFamily restricts a routing-data reference to one address family.
type RTFamily string

const (
	RTFamilyIP  RTFamily = "ip"
	RTFamilyIP6 RTFamily = "ip6"
)

var rtFamilySet = tokenSet(RTFamilyIP, RTFamilyIP6)

// CTFamily restricts a conntrack reference to one address family.
type CTFamily string

const (
	CTFamilyIP  CTFamily = "ip"
	CTFamilyIP6 CTFamily = "ip6"
)

var ctFamilySet = tokenSet(CTFamilyIP, CTFamilyIP6)

// CTDir is a conntrack flow direction.
type CTDir string

const (
	CTDirOriginal CTDir = "original"
	CTDirReply    CTDir = "reply"
)

var ctDirSet = tokenSet(CTDirOriginal, CTDirReply)

// NumgenMode selects how a number generator produces values.
type NumgenMode string

const (
	NumgenModeInc    NumgenMode = "inc"
	NumgenModeRandom NumgenMode = "random"
)

var numgenModeSet = tokenSet(NumgenModeInc, NumgenModeRandom)

// FibResult is the datum a FIB lookup yields.
type FibResult string

const (
	FibResultOif     FibResult = "oif"
	FibResultOifname FibResult = "oifname"
	FibResultType    FibResult = "type"
)

var fibResultSet = tokenSet(FibResultOif, FibResultOifname, FibResultType)

// FibFlag selects which packet attributes a FIB lookup considers.
type FibFlag string

const (
	FibFlagSaddr FibFlag = "saddr"
	FibFlagDaddr FibFlag = "daddr"
	FibFlagMark  FibFlag = "mark"
	FibFlagIif   FibFlag = "iif"
	FibFlagOif   FibFlag = "oif"
)

var fibFlagSet = tokenSet(FibFlagSaddr, FibFlagDaddr, FibFlagMark, FibFlagIif, FibFlagOif)

// OsfTTL is the TTL comparison mode of an OS fingerprint expression.
type OsfTTL string

const (
	OsfTTLLoose OsfTTL = "loose"
	OsfTTLSkip  OsfTTL = "skip"
)

var osfTTLSet = tokenSet(OsfTTLLoose, OsfTTLSkip)

// MatchOp is the comparison operator of a match statement.
type MatchOp string

const (
	OpAND MatchOp = "&"
	OpOR  MatchOp = "|"
	OpXOR MatchOp = "^"
	OpLSH MatchOp = "<<"
	OpRSH MatchOp = ">>"
	OpEQ  MatchOp = "=="
	OpNEQ MatchOp = "!="
	OpLT  MatchOp = "<"
	OpGT  MatchOp = ">"
	OpLEQ MatchOp = "<="
	OpGEQ MatchOp = ">="
	OpIN  MatchOp = "in" // set/bit lookup: RHS contained in LHS
)

var matchOpSet = tokenSet(OpAND, OpOR, OpXOR, OpLSH, OpRSH, OpEQ, OpNEQ, OpLT, OpGT, OpLEQ, OpGEQ, OpIN)

// BinaryOp is the operator of a binary expression. On the wire the operator
// symbol is the dispatch key itself, e.g. {"&": [lhs, rhs]}.
type BinaryOp string

const (
	BinaryAND BinaryOp = "&"
	BinaryOR  BinaryOp = "|"
	BinaryXOR BinaryOp = "^"
	BinaryLSH BinaryOp = "<<"
	BinaryRSH BinaryOp = ">>"
)

var binaryOpSet = tokenSet(BinaryAND, BinaryOR, BinaryXOR, BinaryLSH, BinaryRSH)

func tokenSet[T ~string](vals ...T) map[T]struct{} {
	m := make(map[T]struct{}, len(vals))
	for _, v := range vals {
		m[v] = struct{}{}
	}
	return m
}
