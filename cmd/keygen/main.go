// Command keygen generates an Ed25519 keypair for token signing and writes
// it out as PEM files. The private key file is what the server's -k flag
// points at.
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"flag"
	"log"
	"os"

	"github.com/gatehouse-dev/gatehouse/internal/server/auth"
)

func main() {

	out := flag.String("out", "ed25519_private.pem", "private key output path")
	pub := flag.String("pub", "", "public key output path (default: <out>.pub)")
	flag.Parse()

	if *pub == "" {
		*pub = *out + ".pub"
	}

	public, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		log.Fatalf("generating key: %v", err)
	}

	privatePEM, err := auth.MarshalPrivateKeyPEM(private)
	if err != nil {
		log.Fatalf("%v", err)
	}
	publicPEM, err := auth.MarshalPublicKeyPEM(public)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := os.WriteFile(*out, privatePEM, 0o600); err != nil {
		log.Fatalf("writing private key: %v", err)
	}
	if err := os.WriteFile(*pub, publicPEM, 0o644); err != nil {
		log.Fatalf("writing public key: %v", err)
	}

	log.Printf("wrote %s and %s", *out, *pub)
}
