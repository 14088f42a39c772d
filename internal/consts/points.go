package consts

// 积分记录类型
const (
	PointsRecordConsumeEarn = 1 // 消费获得
	PointsRecordExchange    = 2 // 积分兑换
	PointsRecordAdminAdjust = 3 // 后台调整
	PointsRecordRefund      = 4 // 退款返还
)
