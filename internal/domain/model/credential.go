package model

// AdminKeyService names the durable slot holding the administrator credential.
// There is exactly one credential per console; absence means logged out.
const AdminKeyService = "viuelpadel_admin-key"
