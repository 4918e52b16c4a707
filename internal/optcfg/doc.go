// Package optcfg resolves driver options from layered sources.
//
// An OptionSet starts from values supplied directly on the command line and is
// then resolved against one section of an INI run configuration. Direct values
// always win over file values, except for options the per-driver accumulation
// policy marks as accumulating, which merge into ordered sequences across
// sources. Key names are case-sensitive throughout; the resolver never
// normalizes them.
package optcfg
