// Package users is the credential store: it persists user records, their
// local or federated account and the ordered list of secrets each user owns.
//
// Storage has three implementations. MongoStorage is the primary backend,
// PostgresStorage is an alternative relational backend with goose migrations
// embedded in Migrations, and MemoryStorage serves tests and single-process
// demos. All of them enforce unique usernames and at most one user per
// (provider, external id) pair, and append secrets atomically.
package users
