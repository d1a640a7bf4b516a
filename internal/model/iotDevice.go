package model

import (
	"devicehub/internal/misc"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type IoTDevice struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Owner     Owner              `bson:"owner" json:"owner"`
	Updates   []Update           `bson:"updates" json:"updates"`
}

type Owner struct {
	Name    string  `bson:"name" json:"name"`
	Email   string  `bson:"email" json:"email"`
	Phone   string  `bson:"phone" json:"phone"`
	Address Address `bson:"address" json:"address"`
	Payment Payment `bson:"payment" json:"payment"`
}

// Payment is persisted as submitted. CVV never leaves the server and
// CreditCard is masked by IoTDevice.Redacted before any response.
type Payment struct {
	CreditCard     string `bson:"credit_card" json:"credit_card"`
	ExpirationDate string `bson:"expiration_date" json:"expiration_date"`
	CVV            string `bson:"cvv" json:"-"`
}

// Update is one entry of a device's history. TimeStamp is always the
// server's clock; ReportedAt holds the time claimed by the client, if any.
type Update struct {
	ID         primitive.ObjectID  `bson:"_id" json:"_id"`
	Data       string              `bson:"data" json:"data"`
	TimeStamp  primitive.DateTime  `bson:"timeStamp" json:"timeStamp"`
	ReportedAt *primitive.DateTime `bson:"reportedAt,omitempty" json:"reportedAt,omitempty"`
}

// Redacted returns a copy of d that is safe to send to clients.
func (d IoTDevice) Redacted() IoTDevice {
	d.Owner.Payment.CreditCard = misc.MaskTail(d.Owner.Payment.CreditCard, 4)
	d.Owner.Payment.CVV = ""
	if d.Updates == nil {
		d.Updates = []Update{}
	}
	return d
}
