// Package testsupport provides shared fakes and fixtures for engine
// tests: an in-memory video with text tracks, recording messenger and
// observer stubs, and a canned fetcher.
package testsupport
