// Package slug generates and validates URL-safe tenant slugs.
//
// A slug is the tenant's subdomain label ("firenze" in firenze.example.com),
// so every slug must also be a valid DNS label: lowercase alphanumerics and
// inner hyphens, at most 63 characters.
//
//	slug.Make("Città di Firenze") // "citta-di-firenze"
//	slug.IsValid("firenze")       // true
//	slug.IsValid("-bad-")         // false
package slug
