package configs

import (
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

func NewSnapClient() snap.Client {
	env := midtrans.Sandbox
	if LoadENV.AppEnv == "production" {
		env = midtrans.Production
	}

	var client snap.Client
	client.New(LoadENV.MidtransServerKey, env)

	midtrans.ClientKey = LoadENV.MidtransClientKey
	midtrans.ServerKey = LoadENV.MidtransServerKey
	midtrans.Environment = env

	return client
}
