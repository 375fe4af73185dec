// Package googletranslate calls the public Google Translate "gtx" endpoint.
//
// One request is issued per Translate call; failures are returned to the
// caller untouched and never retried. An optional token-bucket limiter paces
// calls so long files do not trip the endpoint's throttling.
package googletranslate
