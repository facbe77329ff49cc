package common

// ManifestFileName is the name of a Basecode project manifest (grounded
// on the teacher's ChaiModuleFileName). Package buildcfg declares its own
// constant of the same value and does not use this one.
const ManifestFileName = "basecode.toml"

// CompilerVersion is the current bootstrap compiler version string.
const CompilerVersion = "0.1.0"

// CacheDirName is the compilation caching directory name.
const CacheDirName = ".basecode"
