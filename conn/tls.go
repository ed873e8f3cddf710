package conn

import "crypto/tls"

// tlsConfig builds the *tls.Config for scheme. The panel firmware does
// not negotiate a TLS version, so MinVersion and MaxVersion are pinned
// to the same value per §9's TLS version pinning requirement, and the
// cipher list is relaxed to include suites a modern default would
// reject. Certificate verification is disabled because panels ship
// with a self-signed certificate; callers wanting stricter verification
// should terminate TLS themselves and dial with SchemeTCP instead.
func tlsConfig(scheme Scheme) *tls.Config {
	version := tlsVersion(scheme)
	return &tls.Config{
		MinVersion:         version,
		MaxVersion:         version,
		InsecureSkipVerify: true,
		CipherSuites:       legacyCipherSuites,
	}
}

func tlsVersion(scheme Scheme) uint16 {
	switch scheme {
	case SchemeTLSv1_0:
		return tls.VersionTLS10
	case SchemeTLSv1_2:
		return tls.VersionTLS12
	case SchemeTLSv1_3:
		return tls.VersionTLS13
	default: // SchemeTLS, no explicit version suffix
		return tls.VersionTLS12
	}
}

// legacyCipherSuites includes CBC-mode and non-PFS suites that
// crypto/tls no longer prefers by default, needed for older panel
// firmware that speaks nothing more modern.
var legacyCipherSuites = []uint16{
	tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
	tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_ECDHE_RSA_WITH_AES_128_CBC_SHA,
	tls.TLS_ECDHE_RSA_WITH_AES_256_CBC_SHA,
	tls.TLS_RSA_WITH_AES_128_GCM_SHA256,
	tls.TLS_RSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_RSA_WITH_AES_128_CBC_SHA,
	tls.TLS_RSA_WITH_AES_256_CBC_SHA,
}
